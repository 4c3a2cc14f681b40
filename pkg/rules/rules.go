// Package rules implements movegen for orthodox white pieces in
// king-relative coordinates and infinite-board check/checkmate tests. The
// black king always sits at coord.Origin; it is not a member of any
// piece.Position but still blocks sliders, exactly as board.Position's
// IsAttacked treats the occupied-squares mask as the blocker set in
// herohde/morlock, generalized here from a fixed bitboard to a coordinate
// ray cast since the board is unbounded.
package rules

import (
	"fmt"

	"github.com/loneking/confine/pkg/coord"
	"github.com/loneking/confine/pkg/piece"
)

// Rules bundles a piece layout with the slider reach cap that governs
// movegen and legality for that layout.
type Rules struct {
	Layout        piece.Layout
	MoveBound     int
	MoveBoundMode MoveBoundMode
}

// Validate checks the layout and a positive move_bound, per the
// InvalidScenario taxonomy.
func (r Rules) Validate() error {
	if err := r.Layout.Validate(); err != nil {
		return err
	}
	if r.MoveBound <= 0 {
		return fmt.Errorf("rules: move_bound must be positive, got %v", r.MoveBound)
	}
	return nil
}

// maxSliderSteps returns the number of steps a slider may take along one
// ray, per MoveBoundMode.
func (r Rules) maxSliderSteps() int {
	if r.MoveBoundMode == Exclusive {
		return r.MoveBound - 1
	}
	return r.MoveBound
}

// blocked reports whether c is occupied by a present white piece or by the
// black king at the origin -- the blocker set for both attack rays and
// move rays.
func blocked(pos piece.Position, c coord.Coord) bool {
	return c.IsOrigin() || pos.Occupied(coord.FromCoord(c))
}

// IsAttacked returns true iff any present white piece attacks target.
func (r Rules) IsAttacked(pos piece.Position, target coord.Coord) bool {
	hit := false
	pos.Present(func(_ int, k piece.Kind, sq coord.Square) {
		if hit {
			return
		}
		from := sq.ToCoord()
		switch k {
		case piece.King:
			hit = adjacentUnit(from, target, coord.KingSteps[:])
		case piece.Knight:
			hit = adjacentUnit(from, target, coord.KnightSteps[:])
		case piece.Rook:
			hit = r.rayHits(pos, from, coord.OrthogonalDirections[:], target)
		case piece.Bishop:
			hit = r.rayHits(pos, from, coord.DiagonalDirections[:], target)
		case piece.Queen:
			hit = r.rayHits(pos, from, coord.OrthogonalDirections[:], target) || r.rayHits(pos, from, coord.DiagonalDirections[:], target)
		}
	})
	return hit
}

// rayHits reports whether a slider at from, moving along dirs and capped by
// move_bound, attacks target. The ray includes its first blocked square as
// attacked (it may be the target itself), matching the rule that sliders
// cannot see past the first occupied square (including the black king).
func (r Rules) rayHits(pos piece.Position, from coord.Coord, dirs []coord.Coord, target coord.Coord) bool {
	max := r.maxSliderSteps()
	for _, dir := range dirs {
		for step := 1; step <= max; step++ {
			sq := from.Add(dir.Scale(step))
			if sq == target {
				return true
			}
			if blocked(pos, sq) {
				break
			}
		}
	}
	return false
}

func adjacentUnit(from, target coord.Coord, steps []coord.Coord) bool {
	for _, d := range steps {
		if from.Add(d) == target {
			return true
		}
	}
	return false
}

// BlackInCheck returns true iff the black king, at the origin, is attacked.
func (r Rules) BlackInCheck(pos piece.Position) bool {
	return r.IsAttacked(pos, coord.Origin)
}

// BlackLegalMoves returns the king steps, in coord.KingSteps' fixed order,
// for which the translated position leaves the black king unattacked. A
// step onto a square occupied by a white piece is a capture, automatically
// applied by Position.Translate: the captured piece's square becomes the
// new origin and is cleared.
func (r Rules) BlackLegalMoves(pos piece.Position) []coord.Coord {
	var out []coord.Coord
	for _, d := range coord.KingSteps {
		moved := pos.Translate(d)
		if !r.IsAttacked(moved, coord.Origin) {
			out = append(out, d)
		}
	}
	return out
}

// IsCheckmate returns true iff black is in check and has no legal move.
func (r Rules) IsCheckmate(pos piece.Position) bool {
	return r.BlackInCheck(pos) && len(r.BlackLegalMoves(pos)) == 0
}

// Move is a single pseudo-legal white move: piece at slot Index (kind
// Kind) relocating from From to To.
type Move struct {
	Index    int
	Kind     piece.Kind
	From, To coord.Coord
}

func (m Move) String() string {
	return fmt.Sprintf("%v%v-%v", m.Kind, m.From, m.To)
}

// WhitePseudoMoves enumerates white's moves: for each present piece, every
// destination its kind can reach within move_bound, excluding squares
// occupied by another white piece or the origin, and for sliders, any
// square beyond the first such blocker. Captures are not modeled: black
// has only the king at the origin, which is never a legal destination.
func (r Rules) WhitePseudoMoves(pos piece.Position) []Move {
	var out []Move
	pos.Present(func(i int, k piece.Kind, sq coord.Square) {
		from := sq.ToCoord()
		switch k {
		case piece.King:
			out = append(out, r.stepMoves(pos, i, k, from, coord.KingSteps[:])...)
		case piece.Knight:
			out = append(out, r.stepMoves(pos, i, k, from, coord.KnightSteps[:])...)
		case piece.Rook:
			out = append(out, r.sliderMoves(pos, i, k, from, coord.OrthogonalDirections[:])...)
		case piece.Bishop:
			out = append(out, r.sliderMoves(pos, i, k, from, coord.DiagonalDirections[:])...)
		case piece.Queen:
			out = append(out, r.sliderMoves(pos, i, k, from, coord.OrthogonalDirections[:])...)
			out = append(out, r.sliderMoves(pos, i, k, from, coord.DiagonalDirections[:])...)
		}
	})
	return out
}

func (r Rules) stepMoves(pos piece.Position, i int, k piece.Kind, from coord.Coord, steps []coord.Coord) []Move {
	var out []Move
	for _, d := range steps {
		to := from.Add(d)
		if !blocked(pos, to) {
			out = append(out, Move{Index: i, Kind: k, From: from, To: to})
		}
	}
	return out
}

func (r Rules) sliderMoves(pos piece.Position, i int, k piece.Kind, from coord.Coord, dirs []coord.Coord) []Move {
	var out []Move
	max := r.maxSliderSteps()
	for _, dir := range dirs {
		for step := 1; step <= max; step++ {
			to := from.Add(dir.Scale(step))
			if blocked(pos, to) {
				break
			}
			out = append(out, Move{Index: i, Kind: k, From: from, To: to})
		}
	}
	return out
}

// Apply returns the position after playing m -- slot m.Index relocates to
// m.To. Does not revalidate global invariants beyond not landing on the
// origin, which WhitePseudoMoves already guarantees.
func (r Rules) Apply(pos piece.Position, m Move) piece.Position {
	return pos.WithSquare(m.Index, coord.FromCoord(m.To))
}
