package desktop

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/wm"
)

// Controller wires pointer streams to the geometry engine. Each window has
// at most one interaction (drag or resize); different windows are
// independent.
type Controller struct {
	session *Session
	logger  *slog.Logger

	mu      sync.Mutex
	drags   map[string]*geometry.Drag
	resizes map[string]*geometry.Resize
}

// NewController creates a controller that commits through session.
func NewController(session *Session) *Controller {
	return &Controller{
		session: session,
		logger:  session.logger,
		drags:   make(map[string]*geometry.Drag),
		resizes: make(map[string]*geometry.Resize),
	}
}

// ActiveInteractions returns the number of drags and resizes in progress.
func (c *Controller) ActiveInteractions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.drags) + len(c.resizes)
}

// Dragging reports whether id has a drag in progress and its transient
// offset.
func (c *Controller) Dragging(id string) (geom.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.drags[id]
	if !ok {
		return geom.Point{}, false
	}
	return d.Offset(), true
}

// Resizing reports whether id has a resize in progress and its handle.
func (c *Controller) Resizing(id string) (geometry.Direction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.resizes[id]
	if !ok {
		return 0, false
	}
	return r.Direction(), true
}

// BeginDrag starts a title-bar drag from the window's committed frame.
func (c *Controller) BeginDrag(id string) error {
	w, err := c.draggable(id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busyLocked(id) {
		return fmt.Errorf("%w: %s", ErrInteractionBusy, id)
	}
	c.drags[id] = geometry.BeginDrag(geom.NewRect(w.Position, w.Size))
	c.logger.Debug("drag started", "window", id)
	return nil
}

// DragMove records the cumulative offset and returns the transform to
// preview. Nothing is committed.
func (c *Controller) DragMove(id string, offset geom.Point) (geom.Point, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.drags[id]
	if !ok {
		return geom.Point{}, fmt.Errorf("%w: drag %s", ErrNoInteraction, id)
	}
	return d.Move(offset), nil
}

// EndDrag releases the drag at the final cumulative offset, commits the
// snapped and clamped position and tears the interaction down. A release
// with non-finite data leaves the window where it was.
func (c *Controller) EndDrag(id string, offset geom.Point) (wm.Window, error) {
	c.mu.Lock()
	d, ok := c.drags[id]
	delete(c.drags, id)
	c.mu.Unlock()
	if !ok {
		return wm.Window{}, fmt.Errorf("%w: drag %s", ErrNoInteraction, id)
	}

	res := d.Release(offset, c.session.Bounds())
	if res.Discarded {
		c.logger.Debug("drag release discarded", "window", id, "offset", offset)
		w, ok := c.session.Window(id)
		if !ok {
			return wm.Window{}, fmt.Errorf("%w: %q", ErrUnknownWindow, id)
		}
		return w, nil
	}
	c.logger.Debug("drag released", "window", id, "position", res.Position, "snapped", res.Snapped)
	return c.session.Reposition(id, res.Position)
}

// BeginResize starts a resize from the given handle, anchored at the
// window's committed frame.
func (c *Controller) BeginResize(id string, dir geometry.Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("invalid resize direction %d", dir)
	}
	w, err := c.draggable(id)
	if err != nil {
		return err
	}
	desc, _ := c.session.Application(w.AppID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busyLocked(id) {
		return fmt.Errorf("%w: %s", ErrInteractionBusy, id)
	}
	c.resizes[id] = geometry.BeginResize(dir, geom.NewRect(w.Position, w.Size), desc.MinSize)
	c.logger.Debug("resize started", "window", id, "direction", dir)
	return nil
}

// ResizeMove computes the frame for a pointer delta relative to the start
// and commits position and size as one transition. Invalid frames are dropped and the last
// committed frame is returned.
func (c *Controller) ResizeMove(id string, delta geom.Point) (geom.Rect, error) {
	c.mu.Lock()
	r, ok := c.resizes[id]
	c.mu.Unlock()
	if !ok {
		return geom.Rect{}, fmt.Errorf("%w: resize %s", ErrNoInteraction, id)
	}

	frame, valid := r.Move(delta, c.session.Bounds())
	if !valid {
		c.logger.Debug("resize frame discarded", "window", id, "delta", delta)
		return r.Last(), nil
	}
	if _, err := c.session.SetFrame(id, frame.Rect); err != nil {
		return geom.Rect{}, err
	}
	return frame.Rect, nil
}

// EndResize tears the resize down. Frames were already committed while
// moving.
func (c *Controller) EndResize(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.resizes[id]; !ok {
		return fmt.Errorf("%w: resize %s", ErrNoInteraction, id)
	}
	delete(c.resizes, id)
	c.logger.Debug("resize ended", "window", id)
	return nil
}

// Release ends whatever interaction id has, committing a drag at its last
// recorded offset.
func (c *Controller) Release(id string) {
	c.mu.Lock()
	d, dragging := c.drags[id]
	_, resizing := c.resizes[id]
	c.mu.Unlock()

	if dragging {
		_, _ = c.EndDrag(id, d.Offset())
	}
	if resizing {
		_ = c.EndResize(id)
	}
}

// DragBy replays a complete drag with a single cumulative offset.
func (c *Controller) DragBy(id string, offset geom.Point) (wm.Window, error) {
	if err := c.BeginDrag(id); err != nil {
		return wm.Window{}, err
	}
	if _, err := c.DragMove(id, offset); err != nil {
		c.Release(id)
		return wm.Window{}, err
	}
	return c.EndDrag(id, offset)
}

// ResizeBy replays a complete resize from one handle with a single delta.
func (c *Controller) ResizeBy(id string, dir geometry.Direction, delta geom.Point) (wm.Window, error) {
	if err := c.BeginResize(id, dir); err != nil {
		return wm.Window{}, err
	}
	_, moveErr := c.ResizeMove(id, delta)
	if err := c.EndResize(id); err != nil {
		return wm.Window{}, err
	}
	if moveErr != nil {
		return wm.Window{}, moveErr
	}
	w, ok := c.session.Window(id)
	if !ok {
		return wm.Window{}, fmt.Errorf("%w: %q", ErrUnknownWindow, id)
	}
	return w, nil
}

// Forget drops any interaction held for id without committing, used when
// the window is closed mid-gesture.
func (c *Controller) Forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drags, id)
	delete(c.resizes, id)
}

func (c *Controller) draggable(id string) (wm.Window, error) {
	w, ok := c.session.Window(id)
	if !ok {
		return wm.Window{}, fmt.Errorf("%w: %q", ErrUnknownWindow, id)
	}
	if w.Maximized {
		return wm.Window{}, fmt.Errorf("%w: %s", ErrMaximized, id)
	}
	return w, nil
}

func (c *Controller) busyLocked(id string) bool {
	_, dragging := c.drags[id]
	_, resizing := c.resizes[id]
	return dragging || resizing
}
