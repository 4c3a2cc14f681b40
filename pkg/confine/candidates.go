package confine

import (
	"context"

	"github.com/loneking/confine/pkg/coord"
	"github.com/loneking/confine/pkg/piece"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// InLinfBound enumerates every canonical assignment of white piece squares
// to the L-infinity box [-Bound,Bound]^2 \ {origin}, optionally leaving
// some slots captured. Produces black-to-move states with AbsKing pinned
// to the origin.
type InLinfBound struct {
	Bound         int
	AllowCaptures bool
}

func (g InLinfBound) Generate(_ context.Context, s Scenario) ([]State, error) {
	if g.Bound < 0 {
		return nil, NewInvalidScenario(StageEnumerate, "InLinfBound requires a non-negative bound")
	}
	box := boxCoords(g.Bound, coord.Origin)
	return enumeratePlacements(s, box, g.AllowCaptures, coord.Origin), nil
}

// InAbsBox enumerates every abs_king within the box and every local
// placement whose absolute squares (abs_king + local) also lie in the box.
// Requires Scenario.TrackAbsKing.
type InAbsBox struct {
	Bound         int
	AllowCaptures bool
}

func (g InAbsBox) Generate(_ context.Context, s Scenario) ([]State, error) {
	if g.Bound < 0 {
		return nil, NewInvalidScenario(StageEnumerate, "InAbsBox requires a non-negative bound")
	}
	var out []State
	kings := append([]coord.Coord{coord.Origin}, boxCoords(g.Bound, coord.Origin)...)
	for _, abs := range kings {
		local := localBoxFor(abs, g.Bound)
		out = append(out, enumeratePlacements(s, local, g.AllowCaptures, abs)...)
	}
	return out, nil
}

// FromStates offers a caller-supplied set of states as candidates,
// verbatim.
type FromStates struct {
	States []State
}

func (g FromStates) Generate(_ context.Context, _ Scenario) ([]State, error) {
	return g.States, nil
}

// ReachableFromStart BFS-explores alternating black/white layers from
// Scenario.Start, halting once the work queue would exceed MaxQueue. The
// states it yields are black-to-move, exactly like every other mode.
type ReachableFromStart struct {
	MaxQueue int
}

func (g ReachableFromStart) Generate(ctx context.Context, s Scenario) ([]State, error) {
	start, ok := s.Start.V()
	if !ok {
		return nil, NewInvalidScenario(StageEnumerate, "ReachableFromStart requires scenario.start")
	}

	visited := map[string]bool{}
	var out []State
	queue := []State{start}

	within := func(n int) bool {
		return g.MaxQueue <= 0 || n <= g.MaxQueue
	}

	for len(queue) > 0 {
		if contextx.IsCancelled(ctx) {
			return out, nil
		}

		b := queue[0]
		queue = queue[1:]

		bc := b.Canonical()
		if !s.TrackAbsKing {
			bc.AbsKing = coord.Origin
		}
		key := bc.Key(s.TrackAbsKing)
		if visited[key] {
			continue
		}
		visited[key] = true
		out = append(out, bc)
		if !within(len(out)) {
			break
		}

		for _, delta := range s.Rules.BlackLegalMoves(bc.Pos) {
			w := State{Pos: bc.Pos.Translate(delta), AbsKing: bc.AbsKing.Add(delta)}
			if !s.Laws.AllowBlackMove(bc, w, delta) {
				continue
			}

			for _, m := range s.Rules.WhitePseudoMoves(w.Pos) {
				nb := State{Pos: s.Rules.Apply(w.Pos, m), AbsKing: w.AbsKing}
				if !s.Laws.AllowWhiteMove(w, nb, m) {
					continue
				}
				if !within(len(queue) + len(out) + 1) {
					return out, nil
				}
				queue = append(queue, nb)
			}
			if s.WhiteCanPass && s.Laws.AllowPass(w) {
				if !within(len(queue) + len(out) + 1) {
					return out, nil
				}
				queue = append(queue, w)
			}
		}
	}
	return out, nil
}

// boxCoords returns every coord.Coord c, other than origin itself, with
// max(|c.X-origin.X|,|c.Y-origin.Y|) <= bound, in ascending (X,Y) order --
// the order required for Position.Canonicalize's within-kind sort to
// produce stable results across calls.
func boxCoords(bound int, origin coord.Coord) []coord.Coord {
	var out []coord.Coord
	for x := -bound; x <= bound; x++ {
		for y := -bound; y <= bound; y++ {
			c := coord.Coord{X: origin.X + int8(x), Y: origin.Y + int8(y)}
			if c == origin {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// localBoxFor returns the king-relative squares whose absolute position
// (abs + local) stays within [-bound,bound]^2, for InAbsBox.
func localBoxFor(abs coord.Coord, bound int) []coord.Coord {
	var out []coord.Coord
	for x := -bound; x <= bound; x++ {
		for y := -bound; y <= bound; y++ {
			local := coord.Coord{X: int8(x) - abs.X, Y: int8(y) - abs.Y}
			if local.IsOrigin() {
				continue
			}
			out = append(out, local)
		}
	}
	return out
}

// enumeratePlacements assigns Layout's piece groups (queens, rooks,
// bishops, knights, king), in that order, to disjoint squares drawn from
// available, optionally leaving some slots of a group captured when
// allowCaptures is set. absKing is stamped onto every produced State.
func enumeratePlacements(s Scenario, available []coord.Coord, allowCaptures bool, absKing coord.Coord) []State {
	layout := s.Rules.Layout
	groups := []piece.Kind{piece.Queen, piece.Rook, piece.Bishop, piece.Knight, piece.King}
	slots := make([]coord.Square, layout.Count())

	var out []State
	used := map[coord.Coord]bool{}

	var rec func(gi int)
	rec = func(gi int) {
		if gi == len(groups) {
			cp := make([]coord.Square, len(slots))
			copy(cp, slots)
			pos, err := piece.New(layout, cp)
			if err != nil {
				return
			}
			out = append(out, State{Pos: pos, AbsKing: absKing})
			return
		}

		lo, hi := layout.Range(groups[gi])
		count := hi - lo
		if count == 0 {
			rec(gi + 1)
			return
		}

		minPresent := count
		if allowCaptures {
			minPresent = 0
		}
		for present := count; present >= minPresent; present-- {
			chooseCombo(available, used, present, func(combo []coord.Coord) {
				for i := 0; i < count; i++ {
					if i < present {
						slots[lo+i] = coord.FromCoord(combo[i])
						used[combo[i]] = true
					} else {
						slots[lo+i] = coord.NoSquare
					}
				}
				rec(gi + 1)
				for i := 0; i < present; i++ {
					delete(used, combo[i])
				}
			})
		}
	}
	rec(0)
	return out
}

// chooseCombo calls fn once per k-combination, in ascending index order,
// of the elements of available not already in used.
func chooseCombo(available []coord.Coord, used map[coord.Coord]bool, k int, fn func([]coord.Coord)) {
	free := make([]coord.Coord, 0, len(available))
	for _, c := range available {
		if !used[c] {
			free = append(free, c)
		}
	}
	if k == 0 {
		fn(nil)
		return
	}
	if k > len(free) {
		return
	}

	combo := make([]coord.Coord, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			fn(combo)
			return
		}
		for i := start; i < len(free); i++ {
			combo[depth] = free[i]
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}
