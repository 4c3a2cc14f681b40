package graph_test

import (
	"context"
	"testing"

	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/confine/graph"
	"github.com/loneking/confine/pkg/coord"
	"github.com/loneking/confine/pkg/piece"
	"github.com/loneking/confine/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sq(x, y int8) coord.Square {
	return coord.FromCoord(coord.Coord{X: x, Y: y})
}

func oneRookScenario(t *testing.T) confine.Scenario {
	t.Helper()
	r := rules.Rules{Layout: piece.Layout{Rooks: 1}, MoveBound: 3, MoveBoundMode: rules.Inclusive}
	pos, err := piece.New(r.Layout, []coord.Square{sq(2, 2)})
	require.NoError(t, err)

	return confine.Scenario{
		Rules:        r,
		Domain:       confine.LinfBox{Bound: 3},
		CandidateGen: confine.FromStates{States: []confine.State{{Pos: pos}}},
		Limits:       confine.ResourceLimits{MaxStates: 10000, MaxEdges: 100000, MaxSteps: 100000},
	}
}

func TestBuildProducesReachableGraph(t *testing.T) {
	s := oneRookScenario(t)
	candidates, err := confine.GenerateCandidates(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	g, err := graph.Build(context.Background(), s, candidates, graph.CacheBothBounded)
	require.NoError(t, err)

	assert.NotEmpty(t, g.BStates)
	assert.NotEmpty(t, g.WStates)
	assert.Equal(t, len(g.BStates), len(g.BSucc))
	assert.Equal(t, len(g.WStates), len(g.WSucc))
	assert.Equal(t, len(g.WStates), len(g.WMoves))
}

func TestBuildIsDeterministicAcrossCacheModes(t *testing.T) {
	s := oneRookScenario(t)
	candidates, err := confine.GenerateCandidates(context.Background(), s)
	require.NoError(t, err)

	none, err := graph.Build(context.Background(), s, candidates, graph.CacheNone)
	require.NoError(t, err)
	both, err := graph.Build(context.Background(), s, candidates, graph.CacheBothBounded)
	require.NoError(t, err)

	assert.Equal(t, len(none.BStates), len(both.BStates))
	assert.Equal(t, len(none.WStates), len(both.WStates))
	assert.Equal(t, none.Counters.Edges, both.Counters.Edges)
}

func TestRemoveStalematesDropsDeadEndBNodes(t *testing.T) {
	r := rules.Rules{Layout: piece.Layout{Rooks: 1}, MoveBound: 8, MoveBoundMode: rules.Inclusive}
	pos, err := piece.New(r.Layout, []coord.Square{sq(1, 1)})
	require.NoError(t, err)

	s := confine.Scenario{
		Rules:            r,
		Domain:           confine.LinfBox{Bound: 3},
		CandidateGen:     confine.FromStates{States: []confine.State{{Pos: pos}}},
		RemoveStalemates: true,
		Limits:           confine.ResourceLimits{MaxStates: 10000, MaxEdges: 100000, MaxSteps: 100000},
	}
	candidates, err := confine.GenerateCandidates(context.Background(), s)
	require.NoError(t, err)

	g, err := graph.Build(context.Background(), s, candidates, graph.CacheNone)
	require.NoError(t, err)

	for _, b := range g.BStates {
		legal := r.BlackLegalMoves(b.Pos)
		if len(legal) == 0 {
			assert.True(t, r.BlackInCheck(b.Pos), "a dropped-stalemate candidate with no legal moves must have been in check")
		}
	}
}

func TestResourceLimitsReturnSearchError(t *testing.T) {
	s := oneRookScenario(t)
	s.Limits = confine.ResourceLimits{MaxStates: 1}
	candidates, err := confine.GenerateCandidates(context.Background(), s)
	require.NoError(t, err)

	_, err = graph.Build(context.Background(), s, candidates, graph.CacheNone)
	require.Error(t, err)

	var se *confine.SearchError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, confine.ErrResourceExhaustion, se.Kind)
	assert.Equal(t, confine.StageBuildGraph, se.Stage)
}

func TestDomainExternalWNodesAreNotExpanded(t *testing.T) {
	r := rules.Rules{Layout: piece.Layout{Rooks: 1}, MoveBound: 3, MoveBoundMode: rules.Inclusive}
	pos, err := piece.New(r.Layout, []coord.Square{sq(2, 0)})
	require.NoError(t, err)

	s := confine.Scenario{
		Rules:        r,
		Domain:       kingAtOrigin{},
		TrackAbsKing: true,
		CandidateGen: confine.FromStates{States: []confine.State{{Pos: pos}}},
		Limits:       confine.ResourceLimits{MaxStates: 10000, MaxEdges: 100000, MaxSteps: 100000},
	}
	candidates, err := confine.GenerateCandidates(context.Background(), s)
	require.NoError(t, err)

	g, err := graph.Build(context.Background(), s, candidates, graph.CacheNone)
	require.NoError(t, err)

	foundExternal := false
	for i, external := range g.WExternal {
		if external {
			foundExternal = true
			assert.Empty(t, g.WSucc[i], "external W-nodes must never be expanded")
		}
	}
	assert.True(t, foundExternal, "every king step off the origin should have produced at least one external W-node")
}

// kingAtOrigin treats only the untranslated starting king square as inside,
// so that the W-node reached by any black king step is marked external.
type kingAtOrigin struct{}

func (kingAtOrigin) Inside(s confine.State) bool { return s.AbsKing == coord.Origin }
