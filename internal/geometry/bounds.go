package geometry

import "github.com/1broseidon/deskwm/internal/geom"

// Defaults used when a Bounds field is left zero by callers that build one
// by hand.
const (
	DefaultSnapThreshold = 20
	DefaultMinVisible    = 50
)

// Bounds is everything the engine needs to know about the desktop to turn a
// candidate frame into a valid one.
type Bounds struct {
	Viewport      geom.Size
	Metrics       geom.Metrics
	SnapThreshold float64
	MinVisible    float64
}

// Usable returns the area between the top and bottom strips.
func (b Bounds) Usable() geom.Rect {
	return b.Metrics.UsableArea(b.Viewport)
}

// ClampPosition keeps at least MinVisible pixels of a window of the given
// size inside the usable area and its top edge at or below the top strip.
//
//	x in [-width + MinVisible, viewportWidth - MinVisible]
//	y in [topStrip, viewportHeight - bottomStrip - MinVisible]
//
// When a range is empty (tiny viewport) the lower bound wins so the title bar
// never hides under the top strip.
func ClampPosition(p geom.Point, size geom.Size, b Bounds) geom.Point {
	minVis := b.MinVisible
	top := b.Metrics.TopStrip
	return geom.Point{
		X: geom.Clamp(p.X, -size.Width+minVis, b.Viewport.Width-minVis),
		Y: geom.Clamp(p.Y, top, b.Viewport.Height-b.Metrics.BottomStrip-minVis),
	}
}

// VisibleOverlap returns how much of the frame lies inside the usable area on
// each axis. Used by tests and the invariant checker to verify drag commits.
func VisibleOverlap(r geom.Rect, b Bounds) (horizontal, vertical float64) {
	u := b.Usable()
	horizontal = overlap(r.X, r.Right(), u.X, u.Right())
	vertical = overlap(r.Y, r.Bottom(), u.Y, u.Bottom())
	return horizontal, vertical
}

func overlap(a0, a1, b0, b1 float64) float64 {
	lo := a0
	if b0 > lo {
		lo = b0
	}
	hi := a1
	if b1 < hi {
		hi = b1
	}
	if hi < lo {
		return 0
	}
	return hi - lo
}
