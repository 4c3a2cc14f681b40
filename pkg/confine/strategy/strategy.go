package strategy

import (
	"context"
	"sort"

	"github.com/loneking/confine/pkg/confine"
	"github.com/loneking/confine/pkg/confine/graph"
	"github.com/loneking/confine/pkg/confine/trap"
	"github.com/loneking/confine/pkg/rules"
	"github.com/seekerror/logw"
)

// Reply is the chosen white response from a W-node: either a concrete move
// or a pass (Move == nil), plus the B-node index it leads to.
type Reply struct {
	Move *rules.Move
	ToB  int
}

// passMove is the zero-value Move used to rank a pass reply through
// Preferences.RankWhiteReply -- no real move ever lands on ORIGIN, so this
// sentinel never collides with a genuine candidate.
var passMove = rules.Move{}

// Strategy is a partial function from W-node index to Reply, defined
// exactly on W-nodes reachable from some B-node in the trap.
type Strategy struct {
	replies map[int]Reply
}

func (s Strategy) ReplyFor(wIndex int) (Reply, bool) {
	r, ok := s.replies[wIndex]
	return r, ok
}

func (s Strategy) Len() int { return len(s.replies) }

// Extract computes Strategy over every W-node reachable from T, choosing
// for each the reply minimizing Preferences.RankWhiteReply among those
// landing back in T.
func Extract(ctx context.Context, g *graph.Graph, s confine.Scenario, T trap.Set) Strategy {
	s = s.WithDefaults()
	replies := map[int]Reply{}

	for bi := range g.BStates {
		if !T.Contains(bi) {
			continue
		}
		for _, wi := range g.BSucc[bi] {
			if _, done := replies[wi]; done {
				continue
			}
			if r, ok := bestReply(s, g, wi, T); ok {
				replies[wi] = r
			}
		}
	}

	logw.Debugf(ctx, "strategy: extracted %v replies over %v trap nodes", len(replies), T.Len())
	return Strategy{replies: replies}
}

type candidate struct {
	move *rules.Move
	toB  int
	rank int
}

func bestReply(s confine.Scenario, g *graph.Graph, wi int, T trap.Set) (Reply, bool) {
	wState := g.WStates[wi]
	var candidates []candidate
	for k, bpi := range g.WSucc[wi] {
		if !T.Contains(bpi) {
			continue
		}
		m := g.WMoves[wi][k]
		effective := passMove
		if m != nil {
			effective = *m
		}
		candidates = append(candidates, candidate{
			move: m,
			toB:  bpi,
			rank: s.Preferences.RankWhiteReply(wState, effective),
		})
	}
	if len(candidates) == 0 {
		return Reply{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if ci.rank != cj.rank {
			return ci.rank < cj.rank
		}
		// Pass is ranked but must still resolve ties deterministically
		// against real moves and against other passes by target index.
		im, jm := moveOrdinal(ci.move), moveOrdinal(cj.move)
		for k := range im {
			if im[k] != jm[k] {
				return im[k] < jm[k]
			}
		}
		return ci.toB < cj.toB
	})

	best := candidates[0]
	return Reply{Move: best.move, ToB: best.toB}, true
}

// moveOrdinal totally orders a reply for tie-breaking: real moves compare
// by (Index, To.X, To.Y); pass sorts after every real move with the same
// rank, by convention.
func moveOrdinal(m *rules.Move) [3]int {
	if m == nil {
		return [3]int{1 << 30, 0, 0}
	}
	return [3]int{m.Index, int(m.To.X), int(m.To.Y)}
}
