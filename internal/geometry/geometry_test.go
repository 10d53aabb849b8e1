package geometry

import (
	"math"
	"testing"

	"github.com/1broseidon/deskwm/internal/geom"
)

func testBounds() Bounds {
	return Bounds{
		Viewport:      geom.Size{Width: 1920, Height: 1080},
		Metrics:       geom.Metrics{TopStrip: 28, BottomStrip: 80},
		SnapThreshold: 20,
		MinVisible:    50,
	}
}

func TestDragReleaseClampsFarOffset(t *testing.T) {
	b := testBounds()
	d := BeginDrag(geom.Rect{X: 192, Y: 125, Width: 1536, Height: 778})

	res := d.Release(geom.Point{X: -5000, Y: -5000}, b)
	if res.Discarded {
		t.Fatalf("expected release to commit")
	}
	if res.Position.X != -1536+50 {
		t.Fatalf("expected x=%v, got %v", -1536+50, res.Position.X)
	}
	if res.Position.Y != 28 {
		t.Fatalf("expected y=28, got %v", res.Position.Y)
	}
	if !d.Offset().IsZero() {
		t.Fatalf("expected transient offset reset, got %v", d.Offset())
	}
}

func TestDragMoveIsUnclamped(t *testing.T) {
	d := BeginDrag(geom.Rect{X: 10, Y: 40, Width: 300, Height: 200})
	off := geom.Point{X: -9000, Y: 12000}
	if got := d.Move(off); got != off {
		t.Fatalf("expected transient transform %v, got %v", off, got)
	}
	if d.Offset() != off {
		t.Fatalf("expected stored offset %v, got %v", off, d.Offset())
	}
}

func TestDragNeverOffScreen(t *testing.T) {
	b := testBounds()
	frames := []geom.Rect{
		{X: 100, Y: 100, Width: 600, Height: 400},
		{X: 0, Y: 28, Width: 1920, Height: 972},
		{X: 1800, Y: 900, Width: 2400, Height: 1600},
	}
	offsets := []geom.Point{
		{X: -1e6, Y: -1e6}, {X: 1e6, Y: 1e6}, {X: -1e6, Y: 1e6}, {X: 1e6, Y: -1e6},
		{X: 0, Y: 0}, {X: 3333, Y: -17}, {X: -640, Y: 2100},
	}
	for _, f := range frames {
		for _, off := range offsets {
			res := BeginDrag(f).Release(off, b)
			r := geom.NewRect(res.Position, f.Size())
			h, v := VisibleOverlap(r, b)
			if h < b.MinVisible || v < b.MinVisible {
				t.Fatalf("frame %v offset %v: only %vx%v visible", f, off, h, v)
			}
			if r.Y < b.Metrics.TopStrip {
				t.Fatalf("frame %v offset %v: y=%v above top strip", f, off, r.Y)
			}
		}
	}
}

func TestDragReleaseDiscardsNonFinite(t *testing.T) {
	b := testBounds()
	start := geom.Rect{X: 300, Y: 200, Width: 400, Height: 300}
	for _, off := range []geom.Point{
		{X: math.NaN(), Y: 0},
		{X: 0, Y: math.Inf(1)},
	} {
		res := BeginDrag(start).Release(off, b)
		if !res.Discarded {
			t.Fatalf("expected offset %v to be discarded", off)
		}
		if res.Position != start.Position() {
			t.Fatalf("expected position unchanged, got %v", res.Position)
		}
	}
}

func TestSnap(t *testing.T) {
	b := testBounds()
	size := geom.Size{Width: 400, Height: 300}
	tests := []struct {
		name  string
		in    geom.Point
		want  geom.Point
		edges Edge
	}{
		{"left", geom.Point{X: 15, Y: 400}, geom.Point{X: 0, Y: 400}, EdgeLeft},
		{"negative left", geom.Point{X: -12, Y: 400}, geom.Point{X: 0, Y: 400}, EdgeLeft},
		{"right", geom.Point{X: 1510, Y: 400}, geom.Point{X: 1520, Y: 400}, EdgeRight},
		{"top", geom.Point{X: 500, Y: 40}, geom.Point{X: 500, Y: 28}, EdgeTop},
		{"bottom", geom.Point{X: 500, Y: 700}, geom.Point{X: 500, Y: 700}, EdgeBottom},
		{"bottom near", geom.Point{X: 500, Y: 690}, geom.Point{X: 500, Y: 700}, EdgeBottom},
		{"corner", geom.Point{X: 5, Y: 45}, geom.Point{X: 0, Y: 28}, EdgeLeft | EdgeTop},
		{"outside threshold", geom.Point{X: 21, Y: 49}, geom.Point{X: 21, Y: 49}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, edges := Snap(tt.in, size, b)
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if edges != tt.edges {
				t.Fatalf("expected edges %v, got %v", tt.edges, edges)
			}
		})
	}
}

func TestSnapThenClamp(t *testing.T) {
	b := testBounds()
	// Snaps to the bottom edge, which is still inside the clamp range.
	res := BeginDrag(geom.Rect{X: 500, Y: 600, Width: 400, Height: 300}).Release(geom.Point{X: 0, Y: 95}, b)
	if res.Position.Y != 1080-80-300 {
		t.Fatalf("expected bottom snap, got %v", res.Position)
	}
	if res.Snapped != EdgeBottom {
		t.Fatalf("expected bottom edge, got %v", res.Snapped)
	}
}

func TestResizeWestClampsToMinimum(t *testing.T) {
	b := testBounds()
	r := BeginResize(West, geom.Rect{X: 100, Y: 100, Width: 600, Height: 400}, geom.Size{Width: 100, Height: 100})
	f, ok := r.Move(geom.Point{X: 550}, b)
	if !ok {
		t.Fatalf("expected frame to be valid")
	}
	if f.Rect.Width != 100 || f.Rect.X != 600 {
		t.Fatalf("expected width 100 at x 600, got %v", f.Rect)
	}
	if f.Rect.Right() != 700 {
		t.Fatalf("expected right edge fixed at 700, got %v", f.Rect.Right())
	}
	if !f.Moved {
		t.Fatalf("expected reposition to be required")
	}
}

func TestResizeNorthKeepsBottomEdge(t *testing.T) {
	b := testBounds()
	anchor := geom.Rect{X: 200, Y: 300, Width: 500, Height: 400}
	min := geom.Size{Width: 200, Height: 150}
	r := BeginResize(North, anchor, min)

	for _, dy := range []float64{-50, 10, 100, 249, 250, 251, 400, 5000} {
		f, ok := r.Move(geom.Point{Y: dy}, b)
		if !ok {
			t.Fatalf("dy=%v: frame discarded", dy)
		}
		if f.Rect.Bottom() != anchor.Bottom() {
			t.Fatalf("dy=%v: bottom moved to %v", dy, f.Rect.Bottom())
		}
		if f.Rect.Height < min.Height {
			t.Fatalf("dy=%v: height %v below minimum", dy, f.Rect.Height)
		}
	}
}

func TestResizeNorthPastTopStripKeepsBottomEdge(t *testing.T) {
	b := testBounds()
	anchor := geom.Rect{X: 200, Y: 100, Width: 500, Height: 400}
	r := BeginResize(North, anchor, geom.Size{Width: 100, Height: 100})
	f, ok := r.Move(geom.Point{Y: -500}, b)
	if !ok {
		t.Fatalf("expected valid frame")
	}
	if f.Rect.Y != 28 {
		t.Fatalf("expected y clamped to top strip, got %v", f.Rect.Y)
	}
	if f.Rect.Bottom() != anchor.Bottom() {
		t.Fatalf("expected bottom edge fixed at %v, got %v", anchor.Bottom(), f.Rect.Bottom())
	}
}

func TestResizeSouthEast(t *testing.T) {
	b := testBounds()
	anchor := geom.Rect{X: 100, Y: 100, Width: 600, Height: 400}
	r := BeginResize(SouthEast, anchor, geom.Size{Width: 100, Height: 100})

	f, ok := r.Move(geom.Point{X: 120, Y: -50}, b)
	if !ok {
		t.Fatalf("expected valid frame")
	}
	want := geom.Rect{X: 100, Y: 100, Width: 720, Height: 350}
	if f.Rect != want || f.Moved {
		t.Fatalf("expected %v unmoved, got %+v", want, f)
	}

	// Deltas are relative to the anchor, not the previous frame.
	f, _ = r.Move(geom.Point{X: 10, Y: 10}, b)
	if f.Rect.Width != 610 || f.Rect.Height != 410 {
		t.Fatalf("expected anchored deltas, got %v", f.Rect)
	}
}

func TestResizeFitsViewport(t *testing.T) {
	b := testBounds()
	r := BeginResize(SouthEast, geom.Rect{X: 1000, Y: 500, Width: 600, Height: 300}, geom.Size{Width: 100, Height: 100})
	f, ok := r.Move(geom.Point{X: 5000, Y: 5000}, b)
	if !ok {
		t.Fatalf("expected valid frame")
	}
	if f.Rect.Right() != 1920 {
		t.Fatalf("expected right edge at viewport, got %v", f.Rect.Right())
	}
	if f.Rect.Bottom() != 1000 {
		t.Fatalf("expected bottom edge at bottom strip, got %v", f.Rect.Bottom())
	}
}

func TestResizeNeverBelowMinimum(t *testing.T) {
	b := testBounds()
	min := geom.Size{Width: 320, Height: 200}
	for _, dir := range Directions() {
		r := BeginResize(dir, geom.Rect{X: 400, Y: 300, Width: 500, Height: 400}, min)
		for _, d := range []geom.Point{{X: 1e5, Y: 1e5}, {X: -1e5, Y: -1e5}, {X: 1e5, Y: -1e5}, {X: -1e5, Y: 1e5}} {
			f, ok := r.Move(d, b)
			if !ok {
				continue
			}
			if f.Rect.Width < min.Width || f.Rect.Height < min.Height {
				t.Fatalf("%v delta %v: %v below minimum", dir, d, f.Rect)
			}
		}
	}
}

func TestResizeDiscardsNonFinite(t *testing.T) {
	b := testBounds()
	anchor := geom.Rect{X: 100, Y: 100, Width: 600, Height: 400}
	r := BeginResize(East, anchor, geom.Size{Width: 100, Height: 100})
	if _, ok := r.Move(geom.Point{X: math.NaN()}, b); ok {
		t.Fatalf("expected NaN delta to be discarded")
	}
	if r.Last() != anchor {
		t.Fatalf("expected last frame to stay at anchor, got %v", r.Last())
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions() {
		got, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", d, err)
		}
		if got != d {
			t.Fatalf("expected %v, got %v", d, got)
		}
	}
	if d, err := ParseDirection(" SE "); err != nil || d != SouthEast {
		t.Fatalf("expected SE to parse, got %v %v", d, err)
	}
	for _, bad := range []string{"", "x", "ns", "ew", "nn", "nse", "north"} {
		if _, err := ParseDirection(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
