package coord

// Square packs either NoSquare (a captured piece slot) or a Coord into a
// single comparable word, so it can be used directly as a map key and
// compared with ==. 32 bits.
type Square int32

// NoSquare represents a captured slot. It compares unequal to every
// representable Coord, including Origin.
const NoSquare Square = -1

// FromCoord packs c into a Square.
func FromCoord(c Coord) Square {
	return Square(int32(uint8(c.X))<<8 | int32(uint8(c.Y)))
}

// ToCoord unpacks s into its Coord. Panics if s is NoSquare; callers must
// check IsPresent first.
func (s Square) ToCoord() Coord {
	if s == NoSquare {
		panic("coord: ToCoord on NoSquare")
	}
	return Coord{X: int8(uint8(s >> 8)), Y: int8(uint8(s))}
}

// IsPresent returns true iff s holds a Coord (i.e. is not NoSquare).
func (s Square) IsPresent() bool {
	return s != NoSquare
}

// IsOrigin returns true iff s is present and equals Origin.
func (s Square) IsOrigin() bool {
	return s.IsPresent() && s.ToCoord() == Origin
}

// Less imposes the total order used by canonicalization: NoSquare sorts
// after every present square, so captured slots sink to the tail of their
// same-kind run.
func (s Square) Less(o Square) bool {
	if s == o {
		return false
	}
	if s == NoSquare {
		return false
	}
	if o == NoSquare {
		return true
	}
	return s.ToCoord().Less(o.ToCoord())
}

func (s Square) String() string {
	if s == NoSquare {
		return "--"
	}
	return s.ToCoord().String()
}
