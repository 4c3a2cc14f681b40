package piece_test

import (
	"testing"

	"github.com/loneking/confine/pkg/coord"
	"github.com/loneking/confine/pkg/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rooksLayout(n int) piece.Layout {
	return piece.Layout{Rooks: n}
}

func sq(x, y int8) coord.Square {
	return coord.FromCoord(coord.Coord{X: x, Y: y})
}

func TestNewRejectsOriginAndDuplicates(t *testing.T) {
	_, err := piece.New(rooksLayout(1), []coord.Square{coord.FromCoord(coord.Origin)})
	require.Error(t, err)

	_, err = piece.New(rooksLayout(2), []coord.Square{sq(1, 1), sq(1, 1)})
	require.Error(t, err)
}

func TestNewRejectsWrongSlotCount(t *testing.T) {
	_, err := piece.New(rooksLayout(2), []coord.Square{sq(1, 1)})
	require.Error(t, err)
}

func TestCanonicalizeSortsWithinKind(t *testing.T) {
	p, err := piece.New(rooksLayout(2), []coord.Square{sq(3, 3), sq(1, 1)})
	require.NoError(t, err)

	c := p.Canonicalize()
	assert.Equal(t, sq(1, 1), c.At(0))
	assert.Equal(t, sq(3, 3), c.At(1))
	assert.True(t, c.IsCanonical())
	assert.True(t, c.Canonicalize().Equals(c), "canonicalize is idempotent")
}

func TestCanonicalizeSinksCapturedSlots(t *testing.T) {
	p, err := piece.New(rooksLayout(2), []coord.Square{coord.NoSquare, sq(1, 1)})
	require.NoError(t, err)

	c := p.Canonicalize()
	assert.Equal(t, sq(1, 1), c.At(0))
	assert.Equal(t, coord.NoSquare, c.At(1))
}

func TestCanonicalizeDoesNotCrossKindBoundaries(t *testing.T) {
	layout := piece.Layout{Rooks: 1, Bishops: 1}
	p, err := piece.New(layout, []coord.Square{sq(5, 5), sq(1, 1)})
	require.NoError(t, err)

	c := p.Canonicalize()
	// Rook stays in slot 0 even though the bishop's square sorts lower.
	assert.Equal(t, sq(5, 5), c.At(0))
	assert.Equal(t, sq(1, 1), c.At(1))
}

func TestTranslateCapturesOnOrigin(t *testing.T) {
	p, err := piece.New(rooksLayout(1), []coord.Square{sq(2, 0)})
	require.NoError(t, err)

	moved := p.Translate(coord.Coord{X: 2, Y: 0})
	assert.Equal(t, coord.NoSquare, moved.At(0))
}

func TestTranslateRoundTrip(t *testing.T) {
	p, err := piece.New(rooksLayout(1), []coord.Square{sq(2, 3)})
	require.NoError(t, err)

	delta := coord.Coord{X: 1, Y: -1}
	back := p.Translate(delta).Translate(delta.Negate())
	assert.True(t, back.Equals(p))
}

func TestLayoutKindAtOrder(t *testing.T) {
	l := piece.Layout{WhiteKing: true, Queens: 1, Rooks: 2, Bishops: 1, Knights: 1}
	require.NoError(t, l.Validate())

	want := []piece.Kind{piece.Queen, piece.Rook, piece.Rook, piece.Bishop, piece.Knight, piece.King}
	for i, k := range want {
		assert.Equal(t, k, l.KindAt(i))
	}
	assert.Equal(t, 6, l.Count())
}

func TestLayoutValidateCapacity(t *testing.T) {
	l := piece.Layout{Queens: piece.MaxCapacity + 1}
	assert.Error(t, l.Validate())
}

func TestIsEmpty(t *testing.T) {
	p, err := piece.New(rooksLayout(2), []coord.Square{coord.NoSquare, coord.NoSquare})
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}
