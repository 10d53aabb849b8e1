package geometry

import (
	"math"

	"github.com/1broseidon/deskwm/internal/geom"
)

// Edge is a bit set of the usable-area edges a frame snapped to.
type Edge uint8

const (
	EdgeLeft Edge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	if e == 0 {
		return "none"
	}
	s := ""
	for _, part := range []struct {
		bit  Edge
		name string
	}{
		{EdgeLeft, "left"},
		{EdgeRight, "right"},
		{EdgeTop, "top"},
		{EdgeBottom, "bottom"},
	} {
		if e&part.bit == 0 {
			continue
		}
		if s != "" {
			s += "+"
		}
		s += part.name
	}
	return s
}

// Snap pins each edge of the candidate frame that lies within SnapThreshold
// of the matching usable-area edge. Edges are tested in the order left,
// right, top, bottom against the already-updated position, so on a viewport
// narrower than the threshold allows, right wins over left and bottom over
// top.
func Snap(p geom.Point, size geom.Size, b Bounds) (geom.Point, Edge) {
	threshold := b.SnapThreshold
	if threshold <= 0 {
		return p, 0
	}
	u := b.Usable()
	var snapped Edge

	if math.Abs(p.X-u.X) <= threshold {
		p.X = u.X
		snapped |= EdgeLeft
	}
	if math.Abs(p.X+size.Width-u.Right()) <= threshold {
		p.X = u.Right() - size.Width
		snapped |= EdgeRight
	}
	if math.Abs(p.Y-u.Y) <= threshold {
		p.Y = u.Y
		snapped |= EdgeTop
	}
	if math.Abs(p.Y+size.Height-u.Bottom()) <= threshold {
		p.Y = u.Bottom() - size.Height
		snapped |= EdgeBottom
	}
	return p, snapped
}
