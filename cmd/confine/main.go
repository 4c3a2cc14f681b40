// confine solves the trap, tempo and forced-mate sets for a scenario given
// directly on the command line (as opposed to boundedeval, which reads a
// Scenario JSON config) and optionally writes a solution bundle.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/loneking/confine/pkg/bundle"
	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/confine/solver"
	"github.com/loneking/confine/pkg/piece"
	"github.com/loneking/confine/pkg/rules"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/mathx"
)

var (
	bound            = flag.Int("bound", 2, "Chebyshev bound on white piece displacement from the black king")
	moveBound        = flag.Int("move_bound", 1, "Slider step cap")
	moveBoundMode    = flag.String("move_bound_mode", "inclusive", "Slider step cap mode: inclusive or exclusive")
	queens           = flag.Int("queens", 0, "Number of white queens")
	rooksN           = flag.Int("rooks", 0, "Number of white rooks")
	bishops          = flag.Int("bishops", 0, "Number of white bishops")
	knights          = flag.Int("knights", 0, "Number of white knights")
	whiteKing        = flag.Bool("white_king", false, "Include a white king")
	allowCaptures    = flag.Bool("allow_captures", true, "Allow candidate placements in which some white pieces are already captured")
	whiteCanPass     = flag.Bool("white_can_pass", false, "Allow white to pass")
	removeStalemates = flag.Bool("remove_stalemates", false, "Drop non-check dead-end black-to-move states from the graph")
	bundleDir        = flag.String("bundle", "", "If set, write a solution bundle to this directory")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: confine [options]

confine computes the maximal white-confining trap, its tempo refinement and
exact forced-mate distances for a bounded lone-king endgame scenario.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	ctx := context.Background()
	flag.Parse()

	logw.Infof(ctx, "confine %v", confine.Version)

	mode := rules.Inclusive
	if *moveBoundMode == "exclusive" {
		mode = rules.Exclusive
	} else if *moveBoundMode != "inclusive" {
		logw.Exitf(ctx, "Unknown move_bound_mode %q", *moveBoundMode)
	}

	clampedBound := mathx.Max(0, *bound)

	r := rules.Rules{
		Layout: piece.Layout{
			WhiteKing: *whiteKing,
			Queens:    *queens,
			Rooks:     *rooksN,
			Bishops:   *bishops,
			Knights:   *knights,
		},
		MoveBound:     *moveBound,
		MoveBoundMode: mode,
	}
	if err := r.Validate(); err != nil {
		logw.Exitf(ctx, "Invalid layout: %v", err)
	}

	s := confine.Scenario{
		Rules:            r,
		Domain:           confine.LinfBox{Bound: clampedBound},
		CandidateGen:     confine.InLinfBound{Bound: clampedBound, AllowCaptures: *allowCaptures},
		WhiteCanPass:     *whiteCanPass,
		RemoveStalemates: *removeStalemates,
		AllowCaptures:    *allowCaptures,
	}.WithDefaults()

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

	logw.Infof(ctx, "confine: |T|=%v |Tempo|=%v |Mate|=%v", T.Len(), tempo.Len(), table.Size())

	if *bundleDir != "" {
		strat := solver.ExtractStrategy(ctx, s, T, g)
		if err := bundle.Write(ctx, *bundleDir, s, g, T, strat); err != nil {
			logw.Exitf(ctx, "Failed to write bundle: %v", err)
		}
	}

	out, err := json.Marshal(struct {
		TrapSize  int `json:"trap_size"`
		TempoSize int `json:"tempo_size"`
		MateSize  int `json:"mate_size"`
	}{T.Len(), tempo.Len(), table.Size()})
	if err != nil {
		logw.Exitf(ctx, "Failed to marshal result: %v", err)
	}
	println(string(out))
}
