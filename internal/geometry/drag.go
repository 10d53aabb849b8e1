package geometry

import "github.com/1broseidon/deskwm/internal/geom"

// Drag is one title-bar drag interaction. The zero value is not usable; call
// BeginDrag.
type Drag struct {
	origin geom.Rect
	offset geom.Point
}

// DragResult is the outcome of releasing a drag.
type DragResult struct {
	Position geom.Point
	Snapped  Edge
	// Discarded is set when the release carried non-finite data and the
	// committed position must stay where it was.
	Discarded bool
}

// BeginDrag snapshots the window's last committed frame.
func BeginDrag(committed geom.Rect) *Drag {
	return &Drag{origin: committed}
}

// Origin returns the frame captured at drag start.
func (d *Drag) Origin() geom.Rect {
	return d.origin
}

// Move records the cumulative pointer offset since drag start and returns
// the transient transform to preview. Nothing is clamped while dragging.
func (d *Drag) Move(offset geom.Point) geom.Point {
	d.offset = offset
	return offset
}

// Offset returns the current transient transform.
func (d *Drag) Offset() geom.Point {
	return d.offset
}

// Release computes the position to commit for the given final cumulative
// offset: snap first, then the hard clamp. The transient transform is reset
// to zero either way.
func (d *Drag) Release(offset geom.Point, b Bounds) DragResult {
	d.offset = geom.Point{}
	if !offset.Finite() || !d.origin.Finite() {
		return DragResult{Position: d.origin.Position(), Discarded: true}
	}

	size := d.origin.Size()
	candidate := d.origin.Position().Add(offset)
	snapped, edges := Snap(candidate, size, b)
	final := ClampPosition(snapped, size, b)
	if !final.Finite() {
		return DragResult{Position: d.origin.Position(), Discarded: true}
	}
	return DragResult{Position: final, Snapped: edges}
}
