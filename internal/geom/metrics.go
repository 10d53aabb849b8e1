package geom

// Metrics describes the fixed chrome around the usable desktop area.
type Metrics struct {
	// TopStrip is the height of the menu bar; windows never go above it.
	TopStrip float64 `json:"top_strip"`
	// BottomStrip is the height of the dock area.
	BottomStrip float64 `json:"bottom_strip"`
}

// DefaultMetrics returns the stock strip heights.
func DefaultMetrics() Metrics {
	return Metrics{TopStrip: 28, BottomStrip: 80}
}

// UsableArea returns the region between the top and bottom strips.
// The height never goes negative on tiny viewports.
func (m Metrics) UsableArea(viewport Size) Rect {
	h := viewport.Height - m.TopStrip - m.BottomStrip
	if h < 0 {
		h = 0
	}
	w := viewport.Width
	if w < 0 {
		w = 0
	}
	return Rect{X: 0, Y: m.TopStrip, Width: w, Height: h}
}

// MaximizedRect is the frame a maximized window occupies.
func (m Metrics) MaximizedRect(viewport Size) Rect {
	return m.UsableArea(viewport)
}

// UsableOrigin is the top-left corner of the usable area.
func (m Metrics) UsableOrigin() Point {
	return Point{X: 0, Y: m.TopStrip}
}
