package confine

import (
	"fmt"

	"github.com/loneking/confine/pkg/coord"
	"github.com/loneking/confine/pkg/piece"
)

// State is a black-to-move or white-to-move position: a king-relative
// piece placement plus, when the scenario tracks it, the king's absolute
// square. Which color is to move is never stored on State itself -- it is
// implicit in which of the graph builder's two node colors holds the
// state, exactly as a W-node and a B-node over the same Pos/AbsKing are
// two distinct graph nodes connected by a pass edge.
type State struct {
	Pos     piece.Position
	AbsKing coord.Coord
}

// Canonical returns s with Pos canonicalized. AbsKing is untouched: it has
// no permutation ambiguity to collapse.
func (s State) Canonical() State {
	return State{Pos: s.Pos.Canonicalize(), AbsKing: s.AbsKing}
}

// Key returns a string uniquely identifying s for set/map membership. When
// trackAbsKing is false, AbsKing must already be coord.Origin (Scenario
// enforces this) and is omitted from the key, so that translation-equivalent
// states collapse to one representative.
func (s State) Key(trackAbsKing bool) string {
	if trackAbsKing {
		return fmt.Sprintf("%v#%v", s.Pos.Canonicalize().Key(), s.AbsKing)
	}
	return s.Pos.Canonicalize().Key()
}

func (s State) String() string {
	return fmt.Sprintf("%v@abs%v", s.Pos, s.AbsKing)
}
