package solver

import (
	"context"

	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/confine/buchi"
	"github.com/loneking/confine/pkg/confine/graph"
	"github.com/loneking/confine/pkg/confine/mate"
	"github.com/loneking/confine/pkg/confine/strategy"
	"github.com/loneking/confine/pkg/confine/trap"
	"github.com/seekerror/logw"
)

// buildGraph is the shared prologue every solve entry point runs:
// candidate generation followed by graph construction. Only graph
// construction is counted against scenario.Limits.
func buildGraph(ctx context.Context, s confine.Scenario) (*graph.Graph, error) {
	s = s.WithDefaults()
	candidates, err := confine.GenerateCandidates(ctx, s)
	if err != nil {
		return nil, err
	}
	logw.Infof(ctx, "solver: %v candidate states generated", len(candidates))
	return graph.Build(ctx, s, candidates, graph.CacheBothBounded)
}

// SolveTrap computes the maximal inescapable trap for scenario.
func SolveTrap(ctx context.Context, s confine.Scenario) (trap.Set, error) {
	_, T, err := SolveTrapWithGraph(ctx, s)
	return T, err
}

// SolveTrapWithGraph is SolveTrap plus the built graph, for callers (the
// bundle writer, the CLI) that need it again for strategy extraction
// without rebuilding.
func SolveTrapWithGraph(ctx context.Context, s confine.Scenario) (*graph.Graph, trap.Set, error) {
	g, err := buildGraph(ctx, s)
	if err != nil {
		return nil, trap.Set{}, err
	}
	T, err := trap.Solve(ctx, g, s)
	if err != nil {
		return nil, trap.Set{}, err
	}
	return g, T, nil
}

// SolveTempo computes both the trap and its Büchi (tempo) refinement.
func SolveTempo(ctx context.Context, s confine.Scenario) (trap.Set, buchi.Set, error) {
	g, err := buildGraph(ctx, s)
	if err != nil {
		return trap.Set{}, buchi.Set{}, err
	}

	T, err := trap.Solve(ctx, g, s)
	if err != nil {
		return trap.Set{}, buchi.Set{}, err
	}

	tempo, err := buchi.Solve(ctx, g, s, T)
	if err != nil {
		return trap.Set{}, buchi.Set{}, err
	}
	return T, tempo, nil
}

// SolveForcedMate computes exact forced-mate distances over scenario's
// bounded universe. wantDTM is accepted for API symmetry with the spec;
// the table always carries exact distances, so a false value only
// signals the caller is uninterested in exactness and may discard them.
func SolveForcedMate(ctx context.Context, s confine.Scenario, wantDTM bool) (mate.Table, error) {
	_ = wantDTM
	g, err := buildGraph(ctx, s)
	if err != nil {
		return mate.Table{}, err
	}
	return mate.Solve(ctx, g, s)
}

// ExtractStrategy runs strategy.Extract over a previously computed trap.
func ExtractStrategy(ctx context.Context, s confine.Scenario, T trap.Set, g *graph.Graph) strategy.Strategy {
	return strategy.Extract(ctx, g, s, T)
}
