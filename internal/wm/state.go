package wm

import (
	"fmt"
	"slices"
	"sort"

	"github.com/1broseidon/deskwm/internal/geom"
)

// Window is one application window tracked by the registry.
type Window struct {
	ID        string     `json:"id"`
	AppID     string     `json:"app_id"`
	Open      bool       `json:"open"`
	Minimized bool       `json:"minimized"`
	Maximized bool       `json:"maximized"`
	Position  geom.Point `json:"position"`
	Size      geom.Size  `json:"size"`
	// StackOrder is unique across the session; higher draws on top.
	StackOrder int    `json:"stack_order"`
	Serial     int    `json:"serial"`
	Route      string `json:"route,omitempty"`
}

// Visible reports whether the window takes part in focus and hit testing.
func (w Window) Visible() bool {
	return w.Open && !w.Minimized
}

// Status returns the collapsed window state.
func (w Window) Status() Status {
	switch {
	case !w.Open:
		return StatusClosed
	case w.Minimized:
		return StatusMinimized
	case w.Maximized:
		return StatusMaximized
	default:
		return StatusNormal
	}
}

// Status is the reachable state of a single window.
type Status int

const (
	StatusClosed Status = iota
	StatusNormal
	StatusMinimized
	StatusMaximized
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusClosed:
		return "closed"
	case StatusNormal:
		return "normal"
	case StatusMinimized:
		return "minimized"
	case StatusMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// State is the whole registry. Treat it as a value: Reducer.Apply never
// modifies the State it receives.
type State struct {
	Windows        []Window  `json:"windows"`
	ActiveID       string    `json:"active_id,omitempty"`
	NextStackOrder int       `json:"next_stack_order"`
	NextSerial     int       `json:"next_serial"`
	Booting        bool      `json:"booting"`
	Viewport       geom.Size `json:"viewport"`
}

// NewState returns an empty registry with both counters at 1.
func NewState() State {
	return State{NextStackOrder: 1, NextSerial: 1}
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	out := s
	if s.Windows != nil {
		out.Windows = make([]Window, len(s.Windows))
		copy(out.Windows, s.Windows)
	}
	return out
}

// Equal reports whether a and s hold the same registry.
func (s State) Equal(a State) bool {
	return s.ActiveID == a.ActiveID &&
		s.NextStackOrder == a.NextStackOrder &&
		s.NextSerial == a.NextSerial &&
		s.Booting == a.Booting &&
		s.Viewport == a.Viewport &&
		slices.Equal(s.Windows, a.Windows)
}

// Window looks up a window by id.
func (s State) Window(id string) (Window, bool) {
	if i := s.index(id); i >= 0 {
		return s.Windows[i], true
	}
	return Window{}, false
}

func (s State) index(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Windows {
		if s.Windows[i].ID == id {
			return i
		}
	}
	return -1
}

// topVisible returns the index of the visible window with the highest stack
// order among those accepted by keep, or -1.
func (s State) topVisible(keep func(Window) bool) int {
	best := -1
	for i, w := range s.Windows {
		if !w.Visible() || (keep != nil && !keep(w)) {
			continue
		}
		if best < 0 || w.StackOrder > s.Windows[best].StackOrder {
			best = i
		}
	}
	return best
}

func windowID(appID string, serial int) string {
	return fmt.Sprintf("%s-%d", appID, serial)
}

func sortByStack(ws []Window) {
	sort.Slice(ws, func(i, j int) bool { return ws[i].StackOrder < ws[j].StackOrder })
}
