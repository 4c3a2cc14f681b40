package trap

import (
	"context"

	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/confine/graph"
	"github.com/seekerror/logw"
)

// Set is membership-only: the TrapSet. It keeps a reference to the graph it
// was solved over, which States reads to map B-node indices back to states.
type Set struct {
	g      *graph.Graph
	inTrap []bool
	index  map[string]int
}

func (s Set) Contains(bIndex int) bool { return s.inTrap[bIndex] }

func (s Set) Len() int {
	n := 0
	for _, ok := range s.inTrap {
		if ok {
			n++
		}
	}
	return n
}

// States returns the B-node states in T, in B-node index order.
func (s Set) States() []confine.State {
	out := make([]confine.State, 0, s.Len())
	for i, ok := range s.inTrap {
		if ok {
			out = append(out, s.g.BStates[i])
		}
	}
	return out
}

// ContainsState reports whether state's canonical form is a member of T.
// States never offered to Build are reported absent.
func (s Set) ContainsState(state confine.State, trackAbsKing bool) bool {
	i, ok := s.index[state.Key(trackAbsKing)]
	return ok && s.inTrap[i]
}

// Solve computes T ⊆ B-nodes-in-Domain, the greatest fixed point such that
// every b ∈ T has, for every legal black successor w, some white reply
// landing back in T.
//
// Pass 1 seeds every B-node in Domain with nonzero out-degree as tentatively
// in T. Passes 2-4 evict B-nodes whose good-reply count falls short,
// cascading the eviction backward through predecessor edges exactly as
// spec'd, until no more evictions occur (pass 5).
func Solve(ctx context.Context, g *graph.Graph, s confine.Scenario) (Set, error) {
	s = s.WithDefaults()

	nb, nw := len(g.BStates), len(g.WStates)
	outDegreeB := make([]int, nb)
	for b := range g.BSucc {
		outDegreeB[b] = len(g.BSucc[b])
	}

	inDomain := make([]bool, nb)
	for b, st := range g.BStates {
		inDomain[b] = s.Domain.Inside(st)
	}

	// eligible[b]: b could possibly be in T -- in Domain and has a legal
	// black move. A B-node with zero legal moves is excluded regardless of
	// check status (no confinement needed; it is handled by the mate
	// solver, not the trap solver).
	eligible := make([]bool, nb)
	for b := range eligible {
		eligible[b] = inDomain[b] && outDegreeB[b] > 0
	}

	// wGood[w] counts eligible B-node successors of w -- "at least one
	// white reply lands in T" once wGood[w] > 0.
	wGood := make([]int, nw)
	for w, succ := range g.WSucc {
		for _, b := range succ {
			if eligible[b] {
				wGood[w]++
			}
		}
	}

	bGood := make([]int, nb)
	for b, succ := range g.BSucc {
		if !eligible[b] {
			continue
		}
		for _, w := range succ {
			if wGood[w] > 0 {
				bGood[b]++
			}
		}
	}

	inT := make([]bool, nb)
	copy(inT, eligible)

	bPred := reverseAdjacency(g.WSucc, nb) // bPred[b]: W-node indices with b as a successor
	wPred := reverseAdjacency(g.BSucc, nw) // wPred[w]: B-node indices with w as a successor

	var queue []int
	queued := make([]bool, nb)
	for b := range inT {
		if inT[b] && bGood[b] < outDegreeB[b] {
			queue = append(queue, b)
			queued[b] = true
		}
	}

	steps := 0
	for len(queue) > 0 {
		steps++
		if exceeded, limit := s.Limits.Exceeded(confine.MetricSteps, steps); exceeded {
			return Set{}, confine.NewResourceExhaustion(confine.StageTrapFixedPt, confine.MetricSteps, steps, limit, g.Counters)
		}

		b := queue[0]
		queue = queue[1:]
		queued[b] = false
		if !inT[b] {
			continue
		}
		inT[b] = false

		for _, w := range bPred[b] {
			wGood[w]--
			if wGood[w] != 0 {
				continue
			}
			for _, bp := range wPred[w] {
				if !inT[bp] {
					continue
				}
				bGood[bp]--
				if bGood[bp] < outDegreeB[bp] && !queued[bp] {
					queue = append(queue, bp)
					queued[bp] = true
				}
			}
		}
	}

	index := make(map[string]int, nb)
	for i, st := range g.BStates {
		index[st.Key(s.TrackAbsKing)] = i
	}

	size := 0
	for _, ok := range inT {
		if ok {
			size++
		}
	}
	logw.Debugf(ctx, "trap: |T| = %v of %v B-nodes", size, nb)

	return Set{g: g, inTrap: inT, index: index}, nil
}

// reverseAdjacency inverts an adjacency list of size len(fwd) over a target
// universe of size n, so that reverse[j] lists every i with j ∈ fwd[i].
func reverseAdjacency(fwd [][]int, n int) [][]int {
	rev := make([][]int, n)
	for i, succ := range fwd {
		for _, j := range succ {
			rev[j] = append(rev[j], i)
		}
	}
	return rev
}
