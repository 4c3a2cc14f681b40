package buchi

import (
	"context"

	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/confine/graph"
	"github.com/loneking/confine/pkg/confine/trap"
	"github.com/seekerror/logw"
)

// Set is the tempo set: membership-only, over the same B-node indices as
// the trap.Set it was refined from.
type Set struct {
	g       *graph.Graph
	inTempo []bool
}

func (s Set) Contains(bIndex int) bool { return s.inTempo[bIndex] }

func (s Set) Len() int {
	n := 0
	for _, ok := range s.inTempo {
		if ok {
			n++
		}
	}
	return n
}

func (s Set) States() []confine.State {
	out := make([]confine.State, 0, s.Len())
	for i, ok := range s.inTempo {
		if ok {
			out = append(out, s.g.BStates[i])
		}
	}
	return out
}

// Solve computes Tempo ⊆ T by the νX.μY alternation: repeatedly shrink X
// (starting from T) to the attractor of the accepting W-node set A within
// X, until X stops shrinking.
//
// A := { w | scenario.white_can_pass ∧ Laws.allow_pass(w) ∧ w's pass target ∈ T },
// which graph.Build already computed as WPassTarget; Laws.allow_pass was
// consulted there, so accepting membership here is a lookup, not a
// recheck.
//
// If white_can_pass is false, A is empty and Tempo is empty -- the
// unsupported combination the spec calls out as an empty result, not an
// error.
func Solve(ctx context.Context, g *graph.Graph, s confine.Scenario, T trap.Set) (Set, error) {
	s = s.WithDefaults()
	nb, nw := len(g.BStates), len(g.WStates)

	accepting := make([]bool, nw)
	if s.WhiteCanPass {
		for wi := 0; wi < nw; wi++ {
			target := g.WPassTarget[wi]
			if target >= 0 && T.Contains(target) {
				accepting[wi] = true
			}
		}
	}

	x := make([]bool, nb)
	for bi := range x {
		x[bi] = T.Contains(bi)
	}

	steps := 0
	for {
		y, err := attractor(g, x, accepting, s, &steps)
		if err != nil {
			return Set{}, err
		}

		changed := false
		for bi := range x {
			if x[bi] != y[bi] {
				changed = true
				break
			}
		}
		x = y
		if !changed {
			break
		}
	}

	size := 0
	for _, ok := range x {
		if ok {
			size++
		}
	}
	logw.Debugf(ctx, "buchi: |Tempo| = %v of |T| = %v", size, T.Len())

	return Set{g: g, inTempo: x}, nil
}

// attractor computes the least fixed point Y ⊆ X: the set of B-nodes from
// which every black move lands either on an accepting W-node that has a
// white reply back into X, or on a W-node that has a white reply into Y --
// i.e. white forces progress against all black play, not just some.
func attractor(g *graph.Graph, x, accepting []bool, s confine.Scenario, steps *int) ([]bool, error) {
	nb := len(x)
	y := make([]bool, nb)

	for {
		*steps++
		if exceeded, limit := s.Limits.Exceeded(confine.MetricSteps, *steps); exceeded {
			return nil, confine.NewResourceExhaustion(confine.StageBuchi, confine.MetricSteps, *steps, limit, g.Counters)
		}

		changed := false
		for bi := 0; bi < nb; bi++ {
			if !x[bi] || y[bi] {
				continue
			}

			// Every black reply must either land on an accepting W-node with
			// a reply staying in X, or land on a W-node that already has a
			// reply into Y -- this must hold for every wi in BSucc(bi), not
			// just one of them, or black can simply always play the one
			// reply that escapes the requirement.
			allGood := true
			for _, wi := range g.BSucc[bi] {
				replyInX := false
				replyInY := false
				for _, bpi := range g.WSucc[wi] {
					if x[bpi] {
						replyInX = true
					}
					if y[bpi] {
						replyInY = true
					}
				}

				good := (accepting[wi] && replyInX) || replyInY
				if !good {
					allGood = false
					break
				}
			}

			if allGood {
				y[bi] = true
				changed = true
			}
		}

		if !changed {
			return y, nil
		}
	}
}
