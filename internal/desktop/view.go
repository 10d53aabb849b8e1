package desktop

import (
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/wm"
)

// WindowInfo is a window as presented to clients: the registry record plus
// its collapsed status, display title and on-screen frame.
type WindowInfo struct {
	wm.Window
	Status string    `json:"status"`
	Title  string    `json:"title"`
	Frame  geom.Rect `json:"frame"`
	Active bool      `json:"active"`
}

// Describe renders w against the current viewport.
func (s *Session) Describe(w wm.Window) WindowInfo {
	st := s.State()
	return s.describe(st, w)
}

// DescribeAll renders every open window, bottom to top.
func (s *Session) DescribeAll() []WindowInfo {
	st := s.State()
	ws := st.StackOrdered()
	out := make([]WindowInfo, 0, len(ws))
	for _, w := range ws {
		out = append(out, s.describe(st, w))
	}
	return out
}

func (s *Session) describe(st wm.State, w wm.Window) WindowInfo {
	title := w.AppID
	if desc, ok := s.Application(w.AppID); ok && desc.Name != "" {
		title = desc.Name
	}
	return WindowInfo{
		Window: w,
		Status: w.Status().String(),
		Title:  title,
		Frame:  wm.FrameOf(w, st.Viewport, s.Metrics()),
		Active: w.ID == st.ActiveID,
	}
}
