package piece

import (
	"fmt"
	"sort"
	"strings"

	"github.com/loneking/confine/pkg/coord"
)

// Position is a fixed-capacity, king-relative placement of a Layout's white
// pieces. Element i is the location of the i-th piece in Layout's slot
// order. A NoSquare entry means that piece has been captured.
//
// Invariants: len(squares) == layout.Count(); no present square equals
// coord.Origin (the black king's own square); no two present squares are
// equal.
type Position struct {
	layout  Layout
	squares []coord.Square
}

// New builds a Position from a layout and a full set of slot assignments,
// validating the invariants. squares must have exactly layout.Count()
// entries, one per slot in Layout's stable order.
func New(layout Layout, squares []coord.Square) (Position, error) {
	if err := layout.Validate(); err != nil {
		return Position{}, err
	}
	if len(squares) != layout.Count() {
		return Position{}, fmt.Errorf("piece: expected %v squares for layout %v, got %v", layout.Count(), layout, len(squares))
	}

	seen := make(map[coord.Square]bool, len(squares))
	for _, sq := range squares {
		if !sq.IsPresent() {
			continue
		}
		if sq.IsOrigin() {
			return Position{}, fmt.Errorf("piece: square %v occupies origin (the black king)", sq)
		}
		if seen[sq] {
			return Position{}, fmt.Errorf("piece: duplicate square %v", sq)
		}
		seen[sq] = true
	}

	cp := make([]coord.Square, len(squares))
	copy(cp, squares)
	return Position{layout: layout, squares: cp}, nil
}

// Layout returns the piece layout this position places.
func (p Position) Layout() Layout {
	return p.layout
}

// Len returns the number of slots, i.e. layout.Count().
func (p Position) Len() int {
	return len(p.squares)
}

// At returns the square of slot i.
func (p Position) At(i int) coord.Square {
	return p.squares[i]
}

// KindAt returns the piece kind of slot i.
func (p Position) KindAt(i int) Kind {
	return p.layout.KindAt(i)
}

// IsEmpty returns true iff every slot has been captured.
func (p Position) IsEmpty() bool {
	return p.NumPresent() == 0
}

// NumPresent returns the number of slots that still hold a piece.
func (p Position) NumPresent() int {
	n := 0
	for _, sq := range p.squares {
		if sq.IsPresent() {
			n++
		}
	}
	return n
}

// Present calls fn for every present square, along with its slot index and
// kind, in slot order (queens, rooks, bishops, knights, king) -- the fixed
// order the ordering guarantees in the system's concurrency model require.
func (p Position) Present(fn func(i int, k Kind, sq coord.Square)) {
	for i, sq := range p.squares {
		if sq.IsPresent() {
			fn(i, p.layout.KindAt(i), sq)
		}
	}
}

// Occupied reports whether any present piece sits on c.
func (p Position) Occupied(c coord.Square) bool {
	for _, sq := range p.squares {
		if sq == c {
			return true
		}
	}
	return false
}

// Canonicalize returns the canonical form of p: within each same-kind slot
// run, present squares are sorted ascending and captured slots (NoSquare)
// sink to the end of the run. This collapses permutations of identical
// pieces to one representative, so canonical positions are suitable map
// keys / set elements.
func (p Position) Canonicalize() Position {
	out := make([]coord.Square, len(p.squares))
	copy(out, p.squares)

	for _, k := range []Kind{Queen, Rook, Bishop, Knight, King} {
		lo, hi := p.layout.Range(k)
		if hi-lo <= 1 {
			continue
		}
		run := out[lo:hi]
		sort.Slice(run, func(i, j int) bool {
			return run[i].Less(run[j])
		})
	}
	return Position{layout: p.layout, squares: out}
}

// IsCanonical reports whether p already equals its canonical form.
func (p Position) IsCanonical() bool {
	return p.Equals(p.Canonicalize())
}

// Translate returns p with delta subtracted from every present square,
// capturing (setting to NoSquare) any square that lands on the origin.
// Used to re-frame the position after a black king step.
func (p Position) Translate(delta coord.Coord) Position {
	out := make([]coord.Square, len(p.squares))
	for i, sq := range p.squares {
		if !sq.IsPresent() {
			out[i] = coord.NoSquare
			continue
		}
		moved := sq.ToCoord().Sub(delta)
		if moved.IsOrigin() {
			out[i] = coord.NoSquare
		} else {
			out[i] = coord.FromCoord(moved)
		}
	}
	return Position{layout: p.layout, squares: out}
}

// WithSquare returns a copy of p with slot i set to sq, without
// re-validating global invariants (the caller is responsible for producing
// a legal position; used internally by movegen which already knows the
// destination is legal).
func (p Position) WithSquare(i int, sq coord.Square) Position {
	out := make([]coord.Square, len(p.squares))
	copy(out, p.squares)
	out[i] = sq
	return Position{layout: p.layout, squares: out}
}

// Equals returns true iff p and o have the same layout and squares.
func (p Position) Equals(o Position) bool {
	if p.layout != o.layout || len(p.squares) != len(o.squares) {
		return false
	}
	for i := range p.squares {
		if p.squares[i] != o.squares[i] {
			return false
		}
	}
	return true
}

// Key returns a comparable value suitable for use as a map key, which a
// slice-backed Position is not. Positions should be canonicalized before
// keying, so that equivalent piece permutations collapse to one key.
func (p Position) Key() string {
	var sb strings.Builder
	for _, sq := range p.squares {
		fmt.Fprintf(&sb, "%d|", int32(sq))
	}
	return sb.String()
}

func (p Position) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	p.Present(func(i int, k Kind, sq coord.Square) {
		if sb.Len() > 1 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v@%v", k, sq)
	})
	sb.WriteString("}")
	return sb.String()
}
