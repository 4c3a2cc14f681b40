package bundle

import (
	"fmt"

	"github.com/loneking/confine/pkg/coord"
	"github.com/loneking/confine/pkg/piece"
)

func coordOf(x, y int8) coord.Coord {
	return coord.Coord{X: x, Y: y}
}

func kindFromString(s string) (piece.Kind, error) {
	switch s {
	case "Q":
		return piece.Queen, nil
	case "R":
		return piece.Rook, nil
	case "B":
		return piece.Bishop, nil
	case "N":
		return piece.Knight, nil
	case "K":
		return piece.King, nil
	default:
		return 0, fmt.Errorf("bundle: unknown piece kind %q", s)
	}
}
