// Package coord provides packed coordinate arithmetic for the king-relative
// reference frame used throughout the solver. Unlike a chess board's 8x8
// squares, these coordinates are unbounded in principle: the only ceiling is
// king_step + max_slider_displacement for whatever scenario is in play.
package coord

import "fmt"

// Coord is a signed 2-D displacement from some reference point, typically
// the black king. 16 bits.
type Coord struct {
	X, Y int8
}

// Origin is the zero displacement -- the black king's own square in the
// king-relative frame.
var Origin = Coord{}

// Add returns c+d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub returns c-d.
func (c Coord) Sub(d Coord) Coord {
	return Coord{X: c.X - d.X, Y: c.Y - d.Y}
}

// Scale returns c with both components multiplied by n. Used to walk a
// unit ray direction n steps from some origin square.
func (c Coord) Scale(n int) Coord {
	return Coord{X: int8(int(c.X) * n), Y: int8(int(c.Y) * n)}
}

// Negate returns -c.
func (c Coord) Negate() Coord {
	return Coord{X: -c.X, Y: -c.Y}
}

// IsOrigin returns true iff c is the zero displacement.
func (c Coord) IsOrigin() bool {
	return c == Origin
}

// ChebyshevNorm returns max(|x|,|y|), the L-infinity radius of c.
func (c Coord) ChebyshevNorm() int {
	return max(abs(int(c.X)), abs(int(c.Y)))
}

// Less imposes a total order on coordinates, used to sort same-kind pieces
// into canonical slot order. Ascending by X, then Y.
func (c Coord) Less(o Coord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// KingSteps are the eight unit offsets a king (white or black) may move by.
// Fixed geometric order so that iteration over successors is deterministic,
// per the ordering guarantees in the system's concurrency model.
var KingSteps = [8]Coord{
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
}

// KnightSteps are the eight knight-move offsets, in a fixed geometric order.
var KnightSteps = [8]Coord{
	{X: 1, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: -1}, {X: 1, Y: -2},
	{X: -1, Y: -2}, {X: -2, Y: -1}, {X: -2, Y: 1}, {X: -1, Y: 2},
}

// OrthogonalDirections are the 4 rook/queen ray directions, in a fixed order.
var OrthogonalDirections = [4]Coord{
	{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1},
}

// DiagonalDirections are the 4 bishop/queen ray directions, in a fixed order.
var DiagonalDirections = [4]Coord{
	{X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1},
}
