package wm

import (
	"math"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/geometry"
)

// Placer computes the initial frame of a newly created window.
type Placer struct {
	// InitialSizePercent is the share of the usable area a first window takes.
	InitialSizePercent float64
	// CascadeOffset is the diagonal step between instances of the same app.
	CascadeOffset float64
}

// DefaultPlacer returns the stock placement parameters.
func DefaultPlacer() Placer {
	return Placer{
		InitialSizePercent: 80,
		CascadeOffset:      30,
	}
}

// Place returns the frame for a new window of desc.
//
// With a visible instance of the same application the newest one (by
// serial) is cascaded by CascadeOffset. Otherwise the window is sized to
// InitialSizePercent of the usable area and centered, or, before any
// viewport is known, given its default size at the usable origin. Other
// applications' windows are never considered. Results pass through the drag
// clamp so every new window stays reachable.
func (p Placer) Place(s State, desc apps.Descriptor, bounds geometry.Bounds) geom.Rect {
	m := bounds.Metrics
	hasViewport := bounds.Viewport.Positive()

	if prev, ok := newestVisible(s, desc.ID); ok {
		pos := prev.Position.Add(geom.Point{X: p.CascadeOffset, Y: p.CascadeOffset})
		size := prev.Size.AtLeast(desc.MinSize)
		if hasViewport {
			pos = geometry.ClampPosition(pos, size, bounds)
		}
		return geom.NewRect(pos, size)
	}

	if !hasViewport {
		return geom.NewRect(m.UsableOrigin(), desc.DefaultSize.AtLeast(desc.MinSize))
	}

	usable := m.UsableArea(bounds.Viewport)
	pct := p.InitialSizePercent / 100
	size := geom.Size{
		Width:  math.Round(usable.Width * pct),
		Height: math.Round(usable.Height * pct),
	}.AtLeast(desc.MinSize)
	pos := geom.Point{
		X: math.Round(usable.X + (usable.Width-size.Width)/2),
		Y: math.Round(usable.Y + (usable.Height-size.Height)/2),
	}
	return geom.NewRect(geometry.ClampPosition(pos, size, bounds), size)
}

func newestVisible(s State, appID string) (Window, bool) {
	var best Window
	found := false
	for _, w := range s.Windows {
		if !w.Visible() || w.AppID != appID {
			continue
		}
		if !found || w.Serial > best.Serial {
			best = w
			found = true
		}
	}
	return best, found
}
