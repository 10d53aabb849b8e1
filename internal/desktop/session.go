package desktop

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/wm"
)

// Options configures a Session.
type Options struct {
	Reducer wm.Reducer
	Logger  *slog.Logger
	// CheckInvariants runs wm.CheckInvariants after every transition that
	// changed the state and logs violations.
	CheckInvariants bool
}

// Session owns one registry state and is its only writer.
type Session struct {
	mu       sync.Mutex
	reducer  wm.Reducer
	state    wm.State
	revision uint64

	logger *slog.Logger
	check  bool
}

// NewSession creates a session with an empty registry.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		reducer: opts.Reducer,
		state:   wm.NewState(),
		logger:  logger,
		check:   opts.CheckInvariants,
	}
}

// Dispatch applies one action and returns the resulting state. Actions
// that leave the registry as it was do not count as a revision.
func (s *Session) Dispatch(a wm.Action) wm.State {
	next, _ := s.commit(a, "")
	return next
}

// commit applies a under the lock. A non-empty id must name a window at
// that moment, otherwise nothing is applied.
func (s *Session) commit(a wm.Action, id string) (wm.State, error) {
	s.mu.Lock()
	prev := s.state
	if id != "" {
		if _, ok := prev.Window(id); !ok {
			s.mu.Unlock()
			return prev.Clone(), fmt.Errorf("%w: %q", ErrUnknownWindow, id)
		}
	}
	next := s.reducer.Apply(prev, a)
	changed := !next.Equal(prev)
	if changed {
		s.state = next
		s.revision++
	}
	catalog := s.reducer.Catalog
	s.mu.Unlock()

	if !changed {
		s.logger.Debug("transition ignored", "action", a.Kind())
		return next.Clone(), nil
	}
	s.logger.Debug("transition",
		"action", a.Kind(),
		"active", next.ActiveID,
		"windows", len(next.Windows),
		"next_stack_order", next.NextStackOrder,
	)
	if s.check {
		if err := wm.CheckInvariants(next, catalog); err != nil {
			s.logger.Warn("registry invariant violated", "action", a.Kind(), "error", err)
		}
	}
	return next.Clone(), nil
}

// State returns a copy of the current registry.
func (s *Session) State() wm.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Revision counts transitions that changed the registry.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Metrics returns the strip heights in use.
func (s *Session) Metrics() geom.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reducer.Metrics
}

// SetReducer swaps the transition rules, typically after a config reload.
// Windows already open keep their geometry.
func (s *Session) SetReducer(r wm.Reducer) {
	s.mu.Lock()
	s.reducer = r
	s.mu.Unlock()
	s.logger.Info("reducer replaced", "snap_threshold", r.SnapThreshold, "min_visible", r.MinVisible)
}

// Bounds returns the drag/resize limits for the current viewport.
func (s *Session) Bounds() geometry.Bounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reducer.Bounds(s.state)
}

// Application resolves an application descriptor.
func (s *Session) Application(appID string) (apps.Descriptor, bool) {
	s.mu.Lock()
	catalog := s.reducer.Catalog
	s.mu.Unlock()
	if catalog == nil {
		return apps.Descriptor{}, false
	}
	return catalog.Lookup(appID)
}

// Applications lists the catalog, sorted by id, when it can enumerate.
func (s *Session) Applications() []apps.Descriptor {
	s.mu.Lock()
	catalog := s.reducer.Catalog
	s.mu.Unlock()
	if l, ok := catalog.(interface{ List() []apps.Descriptor }); ok {
		return l.List()
	}
	return nil
}

// Open shows appID, focusing an existing instance when there is one.
func (s *Session) Open(appID, route string) (wm.Window, error) {
	return s.open(wm.Open{AppID: appID, Route: route})
}

// OpenNew always creates a new instance of appID.
func (s *Session) OpenNew(appID, route string) (wm.Window, error) {
	return s.open(wm.Open{AppID: appID, Route: route, NewInstance: true})
}

func (s *Session) open(a wm.Open) (wm.Window, error) {
	if _, ok := s.Application(a.AppID); !ok {
		return wm.Window{}, fmt.Errorf("%w: %q", ErrUnknownApplication, a.AppID)
	}
	next := s.Dispatch(a)
	w, _ := next.ActiveWindow()
	return w, nil
}

// Close removes a window.
func (s *Session) Close(id string) error {
	_, err := s.dispatchFor(id, wm.Close{ID: id})
	return err
}

// Minimize hides a window.
func (s *Session) Minimize(id string) (wm.Window, error) {
	return s.dispatchFor(id, wm.Minimize{ID: id})
}

// Maximize fills the usable area with a window.
func (s *Session) Maximize(id string) (wm.Window, error) {
	return s.dispatchFor(id, wm.Maximize{ID: id})
}

// Restore returns a window to its stored frame.
func (s *Session) Restore(id string) (wm.Window, error) {
	return s.dispatchFor(id, wm.Restore{ID: id})
}

// Focus raises a window.
func (s *Session) Focus(id string) (wm.Window, error) {
	return s.dispatchFor(id, wm.Focus{ID: id})
}

// Reposition commits a position as is.
func (s *Session) Reposition(id string, p geom.Point) (wm.Window, error) {
	return s.dispatchFor(id, wm.Reposition{ID: id, Position: p})
}

// Resize commits a size, floored at the application minimum.
func (s *Session) Resize(id string, size geom.Size) (wm.Window, error) {
	return s.dispatchFor(id, wm.Resize{ID: id, Size: size})
}

// SetFrame commits position and size in one transition.
func (s *Session) SetFrame(id string, frame geom.Rect) (wm.Window, error) {
	return s.dispatchFor(id, wm.SetFrame{ID: id, Frame: frame})
}

// Navigate changes the route a window shows.
func (s *Session) Navigate(id, route string) (wm.Window, error) {
	return s.dispatchFor(id, wm.Navigate{ID: id, Route: route})
}

// BringAllToFront raises every visible window, keeping their order.
func (s *Session) BringAllToFront() wm.State {
	return s.Dispatch(wm.BringAllToFront{})
}

// SetViewport records the live viewport size.
func (s *Session) SetViewport(size geom.Size) wm.State {
	return s.Dispatch(wm.SetViewport{Size: size})
}

// BeginBoot marks the desktop as warming up.
func (s *Session) BeginBoot() {
	s.Dispatch(wm.BeginBoot{})
}

// EndBoot clears the warm-up flag.
func (s *Session) EndBoot() {
	s.Dispatch(wm.EndBoot{})
}

// ActiveWindow returns the focused window.
func (s *Session) ActiveWindow() (wm.Window, bool) {
	return s.State().ActiveWindow()
}

// WindowsForApplication returns the open windows of appID, bottom to top.
func (s *Session) WindowsForApplication(appID string) []wm.Window {
	return s.State().WindowsForApplication(appID)
}

// RunningApplicationIDs returns the applications with open windows.
func (s *Session) RunningApplicationIDs() []string {
	return s.State().RunningApplicationIDs()
}

// Windows returns every open window, bottom to top.
func (s *Session) Windows() []wm.Window {
	return s.State().StackOrdered()
}

// Window looks up a single window.
func (s *Session) Window(id string) (wm.Window, bool) {
	return s.State().Window(id)
}

// Frame returns the on-screen frame of a window.
func (s *Session) Frame(id string) (geom.Rect, bool) {
	return s.State().Frame(id, s.Metrics())
}

func (s *Session) dispatchFor(id string, a wm.Action) (wm.Window, error) {
	next, err := s.commit(a, id)
	if err != nil {
		return wm.Window{}, err
	}
	w, _ := next.Window(id)
	return w, nil
}
