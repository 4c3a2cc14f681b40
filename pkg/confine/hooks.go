package confine

import (
	"sort"

	"github.com/loneking/confine/pkg/coord"
	"github.com/loneking/confine/pkg/piece"
	"github.com/loneking/confine/pkg/rules"
)

// Laws vetoes specific moves orthogonally to Rules -- e.g. forbidding
// captures, or restricting which squares black may flee to. Laws is
// consulted by the graph builder, never by Rules itself.
type Laws interface {
	// AllowBlackMove reports whether black may step by delta from a B-node
	// whose state is from, landing on to.
	AllowBlackMove(from, to State, delta coord.Coord) bool
	// AllowWhiteMove reports whether white may play m from a W-node whose
	// state is from, landing on to.
	AllowWhiteMove(from, to State, m rules.Move) bool
	// AllowPass reports whether white may pass from the W-node s. Only
	// consulted when Scenario.WhiteCanPass is true.
	AllowPass(s State) bool
}

// Domain defines the set of states that count as "inside" for the trap and
// tempo objectives. A black move whose result falls outside Domain is an
// Escape.
type Domain interface {
	Inside(s State) bool
}

// Preferences ranks white replies for deterministic strategy extraction.
// Lower rank is preferred. Never consulted by the trap or Büchi solvers
// themselves.
type Preferences interface {
	RankWhiteReply(s State, reply rules.Move) int
}

// DefaultLaws allows every move, every pass.
type DefaultLaws struct{}

func (DefaultLaws) AllowBlackMove(State, State, coord.Coord) bool { return true }
func (DefaultLaws) AllowWhiteMove(State, State, rules.Move) bool  { return true }
func (DefaultLaws) AllowPass(State) bool                          { return true }

// NoCaptureLaws forbids black king steps that capture a white piece, on
// top of otherwise allowing everything -- a common scenario restriction
// that exercises the Laws hook without disabling it entirely.
type NoCaptureLaws struct{}

func (NoCaptureLaws) AllowBlackMove(from, to State, _ coord.Coord) bool {
	return to.Pos.NumPresent() == from.Pos.NumPresent()
}
func (NoCaptureLaws) AllowWhiteMove(State, State, rules.Move) bool { return true }
func (NoCaptureLaws) AllowPass(State) bool                         { return true }

// DefaultDomain treats a state as inside iff its position still has at
// least one present white piece. Captures that empty the white set thus
// fall outside by default; custom Domain implementations may say
// otherwise, per the spec's open question on this behavior.
type DefaultDomain struct{}

func (DefaultDomain) Inside(s State) bool {
	return !s.Pos.IsEmpty()
}

// LinfBox treats a state as inside iff every present piece's king-relative
// displacement has Chebyshev norm <= Bound. The natural Domain pairing for
// InLinfBound candidate generation (TrackAbsKing=false): candidates start
// inside the box, and this Domain is what keeps the graph builder's
// reachable closure from growing past it, since a receding slider is
// otherwise never forced back into range or captured.
type LinfBox struct {
	Bound int
}

func (d LinfBox) Inside(s State) bool {
	inside := true
	s.Pos.Present(func(_ int, _ piece.Kind, sq coord.Square) {
		if sq.ToCoord().ChebyshevNorm() > d.Bound {
			inside = false
		}
	})
	return inside
}

// AbsBox treats a state as inside iff the king's absolute square and every
// present piece's absolute square lie within [-Bound,Bound]^2. Pairs with
// InAbsBox candidate generation and TrackAbsKing=true.
type AbsBox struct {
	Bound int
}

func (d AbsBox) Inside(s State) bool {
	if absInt(int(s.AbsKing.X)) > d.Bound || absInt(int(s.AbsKing.Y)) > d.Bound {
		return false
	}
	inside := true
	s.Pos.Present(func(_ int, _ piece.Kind, sq coord.Square) {
		c := sq.ToCoord()
		ax, ay := int(s.AbsKing.X)+int(c.X), int(s.AbsKing.Y)+int(c.Y)
		if absInt(ax) > d.Bound || absInt(ay) > d.Bound {
			inside = false
		}
	})
	return inside
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// DefaultPreferences ranks replies by piece index, then destination X, then
// destination Y, giving deterministic but otherwise unopinionated strategy
// extraction. The rank does not follow the order in which movegen produced
// the moves.
type DefaultPreferences struct{}

func (DefaultPreferences) RankWhiteReply(_ State, reply rules.Move) int {
	return reply.Index*10000 + int(reply.To.X)*200 + int(reply.To.Y) + 100
}

// SortMovesByPreference orders moves deterministically by Preferences,
// breaking ties by slot index then destination -- the fixed total order
// the spec requires for reproducible strategy extraction.
func SortMovesByPreference(p Preferences, s State, moves []rules.Move) []rules.Move {
	out := make([]rules.Move, len(moves))
	copy(out, moves)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := p.RankWhiteReply(s, out[i]), p.RankWhiteReply(s, out[j])
		if ri != rj {
			return ri < rj
		}
		if out[i].Index != out[j].Index {
			return out[i].Index < out[j].Index
		}
		if out[i].To.X != out[j].To.X {
			return out[i].To.X < out[j].To.X
		}
		return out[i].To.Y < out[j].To.Y
	})
	return out
}
