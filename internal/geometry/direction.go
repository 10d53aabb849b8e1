package geometry

import (
	"fmt"
	"strings"
)

// Direction identifies a resize handle as a set of compass components.
type Direction uint8

const (
	North Direction = 1 << iota
	South
	East
	West

	NorthEast = North | East
	NorthWest = North | West
	SouthEast = South | East
	SouthWest = South | West
)

// Has reports whether d includes every component of c.
func (d Direction) Has(c Direction) bool {
	return c != 0 && d&c == c
}

// Valid reports whether d names one of the eight resize handles.
func (d Direction) Valid() bool {
	if d == 0 || d&^(North|South|East|West) != 0 {
		return false
	}
	if d.Has(North|South) || d.Has(East|West) {
		return false
	}
	return true
}

// String returns the compass label, e.g. "ne".
func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	var b strings.Builder
	if d.Has(North) {
		b.WriteByte('n')
	}
	if d.Has(South) {
		b.WriteByte('s')
	}
	if d.Has(East) {
		b.WriteByte('e')
	}
	if d.Has(West) {
		b.WriteByte('w')
	}
	return b.String()
}

// ParseDirection converts a handle label ("n", "se", ...) into a Direction.
func ParseDirection(s string) (Direction, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	var d Direction
	for _, r := range label {
		var c Direction
		switch r {
		case 'n':
			c = North
		case 's':
			c = South
		case 'e':
			c = East
		case 'w':
			c = West
		default:
			return 0, fmt.Errorf("invalid resize direction %q", s)
		}
		if d&c != 0 {
			return 0, fmt.Errorf("invalid resize direction %q", s)
		}
		d |= c
	}
	if len(label) > 2 || !d.Valid() {
		return 0, fmt.Errorf("invalid resize direction %q", s)
	}
	return d, nil
}

// Directions lists all eight handles in a stable order.
func Directions() []Direction {
	return []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}
}
