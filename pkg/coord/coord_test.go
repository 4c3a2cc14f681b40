package coord_test

import (
	"testing"

	"github.com/loneking/confine/pkg/coord"
	"github.com/stretchr/testify/assert"
)

func TestCoordArithmetic(t *testing.T) {
	tests := []struct {
		a, b     coord.Coord
		wantAdd  coord.Coord
		wantSub  coord.Coord
		wantNorm int
	}{
		{coord.Coord{X: 1, Y: 2}, coord.Coord{X: 3, Y: -1}, coord.Coord{X: 4, Y: 1}, coord.Coord{X: -2, Y: 3}, 2},
		{coord.Origin, coord.Origin, coord.Origin, coord.Origin, 0},
		{coord.Coord{X: -5, Y: 2}, coord.Origin, coord.Coord{X: -5, Y: 2}, coord.Coord{X: -5, Y: 2}, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantAdd, tt.a.Add(tt.b))
		assert.Equal(t, tt.wantSub, tt.a.Sub(tt.b))
		assert.Equal(t, tt.wantNorm, tt.a.ChebyshevNorm())
	}
}

func TestCoordNegateRoundTrip(t *testing.T) {
	for _, c := range []coord.Coord{{X: 3, Y: -4}, {X: -7, Y: 7}, coord.Origin} {
		assert.Equal(t, c, c.Negate().Negate())
	}
}

func TestSquareRoundTrip(t *testing.T) {
	for _, c := range []coord.Coord{{X: 3, Y: -4}, {X: -7, Y: 7}, coord.Origin, {X: -128, Y: 127}} {
		sq := coord.FromCoord(c)
		assert.True(t, sq.IsPresent())
		assert.Equal(t, c, sq.ToCoord())
	}
}

func TestSquareNoSquare(t *testing.T) {
	assert.False(t, coord.NoSquare.IsPresent())
	assert.False(t, coord.NoSquare.IsOrigin())
	assert.Equal(t, "--", coord.NoSquare.String())
}

func TestSquareOrdering(t *testing.T) {
	present := coord.FromCoord(coord.Coord{X: 1, Y: 1})
	assert.True(t, present.Less(coord.NoSquare))
	assert.False(t, coord.NoSquare.Less(present))
	assert.False(t, coord.NoSquare.Less(coord.NoSquare))
}

func TestKingStepsAreUnitMoves(t *testing.T) {
	for _, d := range coord.KingSteps {
		assert.Equal(t, 1, d.ChebyshevNorm())
	}
	assert.Len(t, coord.KingSteps, 8)
}

func TestKnightStepsShape(t *testing.T) {
	for _, d := range coord.KnightSteps {
		x, y := abs(d.X), abs(d.Y)
		assert.True(t, (x == 1 && y == 2) || (x == 2 && y == 1))
	}
}

func abs(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}
