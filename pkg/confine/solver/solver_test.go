package solver_test

import (
	"context"
	"testing"

	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/confine/solver"
	"github.com/loneking/confine/pkg/piece"
	"github.com/loneking/confine/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeRooksPassScenario() confine.Scenario {
	r := rules.Rules{Layout: piece.Layout{Rooks: 3}, MoveBound: 1, MoveBoundMode: rules.Inclusive}
	return confine.Scenario{
		Rules:            r,
		Domain:           confine.LinfBox{Bound: 2},
		CandidateGen:     confine.InLinfBound{Bound: 2, AllowCaptures: true},
		WhiteCanPass:     true,
		RemoveStalemates: true,
		Limits:           confine.ResourceLimits{MaxStates: 1000000, MaxEdges: 10000000, MaxSteps: 10000000},
	}
}

// TestThreeRooksTrapAndTempoGoldenCounts reproduces the spec's concrete
// scenario 3: 3 rooks, bound=2, move_bound=1, white_can_pass=true,
// remove_stalemates=true yields |T|=169, |Tempo|=113, and no checkmate
// belongs to Tempo.
func TestThreeRooksTrapAndTempoGoldenCounts(t *testing.T) {
	s := threeRooksPassScenario()

	T, tempo, err := solver.SolveTempo(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 169, T.Len(), "trap size must match the committed golden count")
	assert.Equal(t, 113, tempo.Len(), "tempo size must match the committed golden count")

	for _, state := range tempo.States() {
		assert.False(t, s.Rules.IsCheckmate(state.Pos), "tempo must exclude immediate checkmates")
	}
}

// TestEmptyWhitePositionBoundOneHasNoTrapOrMate reproduces scenario 4: with
// no white pieces, universe size is nonzero but Trap and Mate are empty.
func TestEmptyWhitePositionBoundOneHasNoTrapOrMate(t *testing.T) {
	r := rules.Rules{Layout: piece.Layout{}, MoveBound: 1, MoveBoundMode: rules.Inclusive}
	s := confine.Scenario{
		Rules:        r,
		CandidateGen: confine.InLinfBound{Bound: 1},
		Limits:       confine.ResourceLimits{MaxStates: 100000, MaxEdges: 1000000, MaxSteps: 1000000},
	}

	universe, err := s.CandidateGen.Generate(context.Background(), s)
	require.NoError(t, err)
	require.NotEmpty(t, universe)

	T, err := solver.SolveTrap(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 0, T.Len())

	table, err := solver.SolveForcedMate(context.Background(), s, true)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Size())
}

func TestSolveTrapIsDeterministic(t *testing.T) {
	s := threeRooksPassScenario()

	a, err := solver.SolveTrap(context.Background(), s)
	require.NoError(t, err)
	b, err := solver.SolveTrap(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, a.Len(), b.Len())
}
