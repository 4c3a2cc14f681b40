// boundedeval runs a bounded scenario end to end and prints the golden
// regression counters: universe_size, in_universe_moves, escaping_moves,
// checkmates, trap_size, tempo_size and mate_size.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/confine/solver"
	"github.com/loneking/confine/pkg/scenario"
	"github.com/seekerror/logw"
)

var (
	config = flag.String("config", "", "Path to a Scenario JSON config")
)

type counters struct {
	UniverseSize    int `json:"universe_size"`
	InUniverseMoves int `json:"in_universe_moves"`
	EscapingMoves   int `json:"escaping_moves"`
	Checkmates      int `json:"checkmates"`
	TrapSize        int `json:"trap_size"`
	TempoSize       int `json:"tempo_size"`
	MateSize        int `json:"mate_size"`
}

func main() {
	ctx := context.Background()
	flag.Parse()

	logw.Infof(ctx, "boundedeval %v", confine.Version)

	if *config == "" {
		logw.Exitf(ctx, "-config is required")
	}
	raw, err := os.ReadFile(*config)
	if err != nil {
		logw.Exitf(ctx, "Failed to read config '%v': %v", *config, err)
	}
	cfg, err := scenario.Decode(raw)
	if err != nil {
		logw.Exitf(ctx, "Invalid scenario '%v': %v", *config, err)
	}
	s, err := scenario.Build(cfg)
	if err != nil {
		logw.Exitf(ctx, "Invalid scenario '%v': %v", *config, err)
	}

	g, T, err := solver.SolveTrapWithGraph(ctx, s)
	if err != nil {
		logw.Exitf(ctx, "Trap solve failed: %v", err)
	}
	_, tempo, err := solver.SolveTempo(ctx, s)
	if err != nil {
		logw.Exitf(ctx, "Tempo solve failed: %v", err)
	}
	table, err := solver.SolveForcedMate(ctx, s, true)
	if err != nil {
		logw.Exitf(ctx, "Forced-mate solve failed: %v", err)
	}

	var escaping, checkmates int
	for wi := range g.WStates {
		if g.WExternal[wi] {
			escaping++
		}
	}
	for _, st := range g.BStates {
		if s.Rules.IsCheckmate(st.Pos) {
			checkmates++
		}
	}

	c := counters{
		UniverseSize:    len(g.BStates),
		InUniverseMoves: len(g.WStates) - escaping,
		EscapingMoves:   escaping,
		Checkmates:      checkmates,
		TrapSize:        T.Len(),
		TempoSize:       tempo.Len(),
		MateSize:        table.Size(),
	}

	out, err := json.Marshal(c)
	if err != nil {
		logw.Exitf(ctx, "Failed to marshal counters: %v", err)
	}
	println(string(out))
}
