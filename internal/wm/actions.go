package wm

import "github.com/1broseidon/deskwm/internal/geom"

// Action is a registry transition request.
type Action interface {
	// Kind is a short name used in logs.
	Kind() string
}

// Open shows an application. Without NewInstance an existing instance is
// focused (or restored from minimized) instead of creating a second one.
type Open struct {
	AppID       string
	Route       string
	NewInstance bool
}

// Close removes a window.
type Close struct{ ID string }

// Minimize hides a window.
type Minimize struct{ ID string }

// Maximize fills the usable area with a window.
type Maximize struct{ ID string }

// Restore returns a window to its stored frame.
type Restore struct{ ID string }

// Focus raises a window and makes it active.
type Focus struct{ ID string }

// Reposition commits a new top-left corner.
type Reposition struct {
	ID       string
	Position geom.Point
}

// Resize commits a new size.
type Resize struct {
	ID   string
	Size geom.Size
}

// SetFrame commits a position and size together. The size is floored at
// the application minimum like Resize.
type SetFrame struct {
	ID    string
	Frame geom.Rect
}

// Navigate changes the route a window shows.
type Navigate struct {
	ID    string
	Route string
}

// SetViewport records the live viewport size.
type SetViewport struct{ Size geom.Size }

// BeginBoot marks the desktop as warming up.
type BeginBoot struct{}

// EndBoot clears the warm-up flag.
type EndBoot struct{}

// BringAllToFront focuses every visible window in its current order.
type BringAllToFront struct{}

func (Open) Kind() string            { return "open" }
func (Close) Kind() string           { return "close" }
func (Minimize) Kind() string        { return "minimize" }
func (Maximize) Kind() string        { return "maximize" }
func (Restore) Kind() string         { return "restore" }
func (Focus) Kind() string           { return "focus" }
func (Reposition) Kind() string      { return "reposition" }
func (Resize) Kind() string          { return "resize" }
func (SetFrame) Kind() string        { return "set_frame" }
func (Navigate) Kind() string        { return "navigate" }
func (SetViewport) Kind() string     { return "set_viewport" }
func (BeginBoot) Kind() string       { return "begin_boot" }
func (EndBoot) Kind() string         { return "end_boot" }
func (BringAllToFront) Kind() string { return "bring_all_to_front" }
