package mate

import (
	"context"

	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/confine/graph"
	"github.com/seekerror/logw"
)

// Table is the bounded-universe forced-mate result: exact ply distances
// for every B-node and W-node white can force a mate from, and an explicit
// miss (-1) for everything else, including any B-node with an
// out-of-universe escape.
type Table struct {
	g     *graph.Graph
	distB []int
	distW []int
}

// DistanceB returns b's distance to mate in black-to-move plies, or
// (0, false) if white cannot force mate from b within the universe.
func (t Table) DistanceB(bi int) (int, bool) {
	d := t.distB[bi]
	if d < 0 {
		return 0, false
	}
	return d, true
}

// DistanceW returns w's distance to mate in white-to-move plies, or
// (0, false) if white cannot force mate from w.
func (t Table) DistanceW(wi int) (int, bool) {
	d := t.distW[wi]
	if d < 0 {
		return 0, false
	}
	return d, true
}

// Size returns the number of B-nodes with a forced-mate distance.
func (t Table) Size() int {
	n := 0
	for _, d := range t.distB {
		if d >= 0 {
			n++
		}
	}
	return n
}

// WinningW returns the indices of every W-node white can force mate from.
func (t Table) WinningW() []int {
	var out []int
	for wi, d := range t.distW {
		if d >= 0 {
			out = append(out, wi)
		}
	}
	return out
}

type node struct {
	isB  bool
	idx  int
	dist int
}

// Solve computes the Table over g, treating scenario.Domain as the bounded
// universe predicate -- consistent with how graph.Build already used
// Domain to mark W-nodes external. A black move landing on an external
// W-node is an out-of-universe escape and permanently disqualifies its
// source B-node from ever receiving a finite distance.
func Solve(ctx context.Context, g *graph.Graph, s confine.Scenario) (Table, error) {
	s = s.WithDefaults()
	nb, nw := len(g.BStates), len(g.WStates)

	distB := make([]int, nb)
	distW := make([]int, nw)
	for i := range distB {
		distB[i] = -1
	}
	for i := range distW {
		distW[i] = -1
	}

	escaping := make([]bool, nb)
	remainingB := make([]int, nb)
	maxKnownB := make([]int, nb)
	for bi := range g.BSucc {
		remainingB[bi] = len(g.BSucc[bi])
		for _, wi := range g.BSucc[bi] {
			if g.WExternal[wi] {
				escaping[bi] = true
			}
		}
	}

	wPredOfB := reverseAdjacency(g.WSucc, nb) // wPredOfB[b]: W-node indices with an edge into b
	bPredOfW := reverseAdjacency(g.BSucc, nw) // bPredOfW[w]: B-node indices with an edge into w

	var queue []node
	for bi, st := range g.BStates {
		if !escaping[bi] && len(g.BSucc[bi]) == 0 && s.Rules.IsCheckmate(st.Pos) && s.Domain.Inside(st) {
			distB[bi] = 0
			queue = append(queue, node{isB: true, idx: bi, dist: 0})
		}
	}
	logw.Debugf(ctx, "mate: seeded %v checkmate B-nodes", len(queue))

	steps := 0
	for len(queue) > 0 {
		steps++
		if exceeded, limit := s.Limits.Exceeded(confine.MetricSteps, steps); exceeded {
			return Table{}, confine.NewResourceExhaustion(confine.StageForcedMate, confine.MetricSteps, steps, limit, g.Counters)
		}

		n := queue[0]
		queue = queue[1:]

		if n.isB {
			for _, wi := range wPredOfB[n.idx] {
				if distW[wi] >= 0 {
					continue
				}
				distW[wi] = n.dist + 1
				queue = append(queue, node{isB: false, idx: wi, dist: distW[wi]})
			}
			continue
		}

		for _, bi := range bPredOfW[n.idx] {
			if escaping[bi] || distB[bi] >= 0 {
				continue
			}
			if n.dist > maxKnownB[bi] {
				maxKnownB[bi] = n.dist
			}
			remainingB[bi]--
			if remainingB[bi] == 0 {
				distB[bi] = maxKnownB[bi] + 1
				queue = append(queue, node{isB: true, idx: bi, dist: distB[bi]})
			}
		}
	}

	t := Table{g: g, distB: distB, distW: distW}
	logw.Debugf(ctx, "mate: |MateTable| = %v B-nodes", t.Size())
	return t, nil
}

func reverseAdjacency(fwd [][]int, n int) [][]int {
	rev := make([][]int, n)
	for i, succ := range fwd {
		for _, j := range succ {
			rev[j] = append(rev[j], i)
		}
	}
	return rev
}
