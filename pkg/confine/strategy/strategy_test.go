package strategy_test

import (
	"context"
	"testing"

	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/confine/graph"
	"github.com/loneking/confine/pkg/confine/strategy"
	"github.com/loneking/confine/pkg/confine/trap"
	"github.com/loneking/confine/pkg/piece"
	"github.com/loneking/confine/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractOnlyPicksRepliesLandingInTrap(t *testing.T) {
	r := rules.Rules{Layout: piece.Layout{Rooks: 2}, MoveBound: 3, MoveBoundMode: rules.Inclusive}
	s := confine.Scenario{
		Rules:            r,
		Domain:           confine.LinfBox{Bound: 2},
		CandidateGen:     confine.InLinfBound{Bound: 2, AllowCaptures: true},
		WhiteCanPass:     true,
		RemoveStalemates: true,
		Limits:           confine.ResourceLimits{MaxStates: 200000, MaxEdges: 2000000, MaxSteps: 2000000},
	}

	candidates, err := confine.GenerateCandidates(context.Background(), s)
	require.NoError(t, err)

	g, err := graph.Build(context.Background(), s, candidates, graph.CacheBothBounded)
	require.NoError(t, err)

	T, err := trap.Solve(context.Background(), g, s)
	require.NoError(t, err)

	strat := strategy.Extract(context.Background(), g, s, T)

	checked := 0
	for bi := range g.BStates {
		if !T.Contains(bi) {
			continue
		}
		for _, wi := range g.BSucc[bi] {
			reply, ok := strat.ReplyFor(wi)
			require.True(t, ok, "every W-node reached from a trap B-node must have a reply")
			assert.True(t, T.Contains(reply.ToB), "strategy reply from W-node %v must land back in the trap", wi)
			checked++
		}
	}
	assert.Greater(t, checked, 0)
}

func TestExtractIsDeterministic(t *testing.T) {
	r := rules.Rules{Layout: piece.Layout{Rooks: 2}, MoveBound: 3, MoveBoundMode: rules.Inclusive}
	s := confine.Scenario{
		Rules:            r,
		Domain:           confine.LinfBox{Bound: 2},
		CandidateGen:     confine.InLinfBound{Bound: 2, AllowCaptures: true},
		WhiteCanPass:     true,
		RemoveStalemates: true,
		Limits:           confine.ResourceLimits{MaxStates: 200000, MaxEdges: 2000000, MaxSteps: 2000000},
	}

	candidates, err := confine.GenerateCandidates(context.Background(), s)
	require.NoError(t, err)

	g, err := graph.Build(context.Background(), s, candidates, graph.CacheBothBounded)
	require.NoError(t, err)

	T, err := trap.Solve(context.Background(), g, s)
	require.NoError(t, err)

	a := strategy.Extract(context.Background(), g, s, T)
	b := strategy.Extract(context.Background(), g, s, T)
	require.Equal(t, a.Len(), b.Len())

	for bi := range g.BStates {
		if !T.Contains(bi) {
			continue
		}
		for _, wi := range g.BSucc[bi] {
			ra, _ := a.ReplyFor(wi)
			rb, _ := b.ReplyFor(wi)
			assert.Equal(t, ra.ToB, rb.ToB)
		}
	}
}
