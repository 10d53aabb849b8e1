package geometry

import (
	"math"

	"github.com/1broseidon/deskwm/internal/geom"
)

// Resize is one directional resize interaction. All deltas are measured from
// the pointer position at start and applied to the anchor frame captured at
// start, never to the live window.
type Resize struct {
	dir     Direction
	anchor  geom.Rect
	minSize geom.Size
	last    geom.Rect
}

// ResizeFrame is one computed resize step.
type ResizeFrame struct {
	Rect geom.Rect
	// Moved reports whether the position differs from the anchor.
	Moved bool
}

// BeginResize snapshots the anchor frame for a resize from the given handle.
func BeginResize(dir Direction, anchor geom.Rect, minSize geom.Size) *Resize {
	return &Resize{dir: dir, anchor: anchor, minSize: minSize, last: anchor}
}

// Direction returns the handle being dragged.
func (r *Resize) Direction() Direction {
	return r.dir
}

// Anchor returns the frame captured at resize start.
func (r *Resize) Anchor() geom.Rect {
	return r.anchor
}

// Last returns the most recent valid frame, or the anchor before any move.
func (r *Resize) Last() geom.Rect {
	return r.last
}

// Move computes the frame for a pointer delta relative to the start. The
// second return value is false when the frame must be discarded.
func (r *Resize) Move(delta geom.Point, b Bounds) (ResizeFrame, bool) {
	if !delta.Finite() || !r.anchor.Finite() {
		return ResizeFrame{}, false
	}

	a := r.anchor
	next := a

	if r.dir.Has(East) {
		next.Width = a.Width + delta.X
	}
	if r.dir.Has(South) {
		next.Height = a.Height + delta.Y
	}
	if r.dir.Has(West) {
		next.Width = a.Width - delta.X
		next.X = a.X + delta.X
		if next.Width < r.minSize.Width {
			next.Width = r.minSize.Width
			next.X = a.X + a.Width - r.minSize.Width
		}
	}
	if r.dir.Has(North) {
		next.Height = a.Height - delta.Y
		next.Y = a.Y + delta.Y
		if next.Height < r.minSize.Height {
			next.Height = r.minSize.Height
			next.Y = a.Y + a.Height - r.minSize.Height
		}
	}
	if next.Width < r.minSize.Width {
		next.Width = r.minSize.Width
	}
	if next.Height < r.minSize.Height {
		next.Height = r.minSize.Height
	}

	next = r.fit(next, b)
	if !next.Finite() || next.Width <= 0 || next.Height <= 0 {
		return ResizeFrame{}, false
	}
	r.last = next
	return ResizeFrame{Rect: next, Moved: next.X != a.X || next.Y != a.Y}, true
}

// fit is the final safety pass: position never left of the screen or above
// the top strip, size no larger than the room left from that position, but
// never under the minimum.
// A west or north handle pushed past the limit keeps the opposite edge fixed.
func (r *Resize) fit(f geom.Rect, b Bounds) geom.Rect {
	if f.X < 0 {
		if r.dir.Has(West) {
			f.Width = math.Max(f.Width+f.X, r.minSize.Width)
		}
		f.X = 0
	}
	if top := b.Metrics.TopStrip; f.Y < top {
		if r.dir.Has(North) {
			f.Height = math.Max(f.Height-(top-f.Y), r.minSize.Height)
		}
		f.Y = top
	}
	if b.Viewport.IsZero() {
		return f
	}
	maxW := b.Viewport.Width - f.X
	maxH := b.Viewport.Height - b.Metrics.BottomStrip - f.Y
	f.Width = math.Max(math.Min(f.Width, maxW), r.minSize.Width)
	f.Height = math.Max(math.Min(f.Height, maxH), r.minSize.Height)
	return f
}
