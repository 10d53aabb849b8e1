package wm

import (
	"sort"

	"github.com/1broseidon/deskwm/internal/geom"
)

// ActiveWindow returns the focused window, if any.
func (s State) ActiveWindow() (Window, bool) {
	w, ok := s.Window(s.ActiveID)
	if !ok || !w.Visible() {
		return Window{}, false
	}
	return w, true
}

// WindowsForApplication returns the open windows of appID ordered bottom to
// top.
func (s State) WindowsForApplication(appID string) []Window {
	var out []Window
	for _, w := range s.Windows {
		if w.Open && w.AppID == appID {
			out = append(out, w)
		}
	}
	sortByStack(out)
	return out
}

// RunningApplicationIDs returns each application with at least one open
// window, in the order the applications were first launched.
func (s State) RunningApplicationIDs() []string {
	first := make(map[string]int)
	for _, w := range s.Windows {
		if !w.Open {
			continue
		}
		if prev, ok := first[w.AppID]; !ok || w.Serial < prev {
			first[w.AppID] = w.Serial
		}
	}
	ids := make([]string, 0, len(first))
	for id := range first {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if first[ids[i]] != first[ids[j]] {
			return first[ids[i]] < first[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

// StackOrdered returns all open windows ordered bottom to top.
func (s State) StackOrdered() []Window {
	out := make([]Window, 0, len(s.Windows))
	for _, w := range s.Windows {
		if w.Open {
			out = append(out, w)
		}
	}
	sortByStack(out)
	return out
}

// VisibleWindows returns the open, non-minimized windows bottom to top.
func (s State) VisibleWindows() []Window {
	var out []Window
	for _, w := range s.StackOrdered() {
		if w.Visible() {
			out = append(out, w)
		}
	}
	return out
}

// Frame returns the on-screen frame of a window. Maximized frames are
// derived from the current viewport; the stored geometry is left alone.
func (s State) Frame(id string, m geom.Metrics) (geom.Rect, bool) {
	w, ok := s.Window(id)
	if !ok {
		return geom.Rect{}, false
	}
	return FrameOf(w, s.Viewport, m), true
}

// FrameOf returns the on-screen frame of w for the given viewport.
func FrameOf(w Window, viewport geom.Size, m geom.Metrics) geom.Rect {
	if w.Maximized {
		return m.MaximizedRect(viewport)
	}
	return geom.NewRect(w.Position, w.Size)
}

// WindowAt returns the topmost visible window whose frame contains p.
func (s State) WindowAt(p geom.Point, m geom.Metrics) (Window, bool) {
	visible := s.VisibleWindows()
	for i := len(visible) - 1; i >= 0; i-- {
		if FrameOf(visible[i], s.Viewport, m).Contains(p) {
			return visible[i], true
		}
	}
	return Window{}, false
}
