package wm

import (
	"sort"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/geometry"
)

// Catalog resolves application ids to descriptors.
type Catalog interface {
	Lookup(id string) (apps.Descriptor, bool)
}

// Reducer applies actions to a State. It holds only configuration; every
// call to Apply is a pure function of its arguments.
type Reducer struct {
	Catalog       Catalog
	Metrics       geom.Metrics
	Placer        Placer
	SnapThreshold float64
	MinVisible    float64
}

// NewReducer returns a reducer with stock metrics and placement.
func NewReducer(catalog Catalog) Reducer {
	return Reducer{
		Catalog:       catalog,
		Metrics:       geom.DefaultMetrics(),
		Placer:        DefaultPlacer(),
		SnapThreshold: geometry.DefaultSnapThreshold,
		MinVisible:    geometry.DefaultMinVisible,
	}
}

// Apply returns the state that results from applying a to s. Unknown ids,
// unknown applications and malformed geometry leave the state unchanged.
func (r Reducer) Apply(s State, a Action) State {
	next := s.Clone()
	if next.NextStackOrder < 1 {
		next.NextStackOrder = 1
	}
	if next.NextSerial < 1 {
		next.NextSerial = 1
	}

	switch a := a.(type) {
	case Open:
		return r.open(next, a)
	case Close:
		i := next.index(a.ID)
		if i < 0 {
			return s
		}
		next.Windows = append(next.Windows[:i], next.Windows[i+1:]...)
		if next.ActiveID == a.ID {
			next.reelect()
		}
	case Minimize:
		i := next.index(a.ID)
		if i < 0 {
			return s
		}
		next.Windows[i].Minimized = true
		if next.ActiveID == a.ID {
			next.reelect()
		}
	case Maximize:
		i := next.index(a.ID)
		if i < 0 {
			return s
		}
		next.Windows[i].Maximized = true
		next.Windows[i].Minimized = false
		next.raise(i)
	case Restore:
		i := next.index(a.ID)
		if i < 0 {
			return s
		}
		next.Windows[i].Maximized = false
		next.Windows[i].Minimized = false
		next.raise(i)
	case Focus:
		i := next.index(a.ID)
		if i < 0 {
			return s
		}
		next.Windows[i].Minimized = false
		next.raise(i)
	case Reposition:
		i := next.index(a.ID)
		if i < 0 || !a.Position.Finite() {
			return s
		}
		next.Windows[i].Position = a.Position
	case Resize:
		i := next.index(a.ID)
		if i < 0 || !a.Size.Finite() {
			return s
		}
		next.Windows[i].Size = a.Size.AtLeast(r.minSize(next.Windows[i].AppID))
	case SetFrame:
		i := next.index(a.ID)
		if i < 0 || !a.Frame.Finite() {
			return s
		}
		next.Windows[i].Position = a.Frame.Position()
		next.Windows[i].Size = a.Frame.Size().AtLeast(r.minSize(next.Windows[i].AppID))
	case Navigate:
		i := next.index(a.ID)
		if i < 0 {
			return s
		}
		next.Windows[i].Route = a.Route
	case SetViewport:
		if !a.Size.Finite() || a.Size.Width < 0 || a.Size.Height < 0 {
			return s
		}
		next.Viewport = a.Size
	case BeginBoot:
		next.Booting = true
	case EndBoot:
		next.Booting = false
	case BringAllToFront:
		var order []int
		for i, w := range next.Windows {
			if w.Visible() {
				order = append(order, i)
			}
		}
		sort.Slice(order, func(x, y int) bool {
			return next.Windows[order[x]].StackOrder < next.Windows[order[y]].StackOrder
		})
		for _, i := range order {
			next.raise(i)
		}
	default:
		return s
	}
	return next
}

func (r Reducer) open(s State, a Open) State {
	desc, ok := r.lookup(a.AppID)
	if !ok {
		return s
	}

	if !a.NewInstance {
		sameApp := func(w Window) bool { return w.AppID == a.AppID }
		if i := s.topVisible(sameApp); i >= 0 {
			s.focusExisting(i, a.Route)
			return s
		}
		if i := s.topMinimized(a.AppID); i >= 0 {
			s.Windows[i].Maximized = false
			s.focusExisting(i, a.Route)
			return s
		}
	}

	frame := r.Placer.Place(s, desc, r.Bounds(s))
	route := a.Route
	if route == "" {
		route = desc.DefaultRoute
	}
	serial := s.NextSerial
	s.NextSerial++
	w := Window{
		ID:         windowID(desc.ID, serial),
		AppID:      desc.ID,
		Open:       true,
		Position:   frame.Position(),
		Size:       frame.Size(),
		StackOrder: s.NextStackOrder,
		Serial:     serial,
		Route:      route,
	}
	s.NextStackOrder++
	s.Windows = append(s.Windows, w)
	s.ActiveID = w.ID
	return s
}

func (r Reducer) lookup(appID string) (apps.Descriptor, bool) {
	if r.Catalog == nil || appID == "" {
		return apps.Descriptor{}, false
	}
	return r.Catalog.Lookup(appID)
}

func (r Reducer) minSize(appID string) geom.Size {
	if d, ok := r.lookup(appID); ok {
		return d.MinSize
	}
	return geom.Size{}
}

// Bounds returns the drag/resize limits for the state's current viewport.
func (r Reducer) Bounds(s State) geometry.Bounds {
	return geometry.Bounds{
		Viewport:      s.Viewport,
		Metrics:       r.Metrics,
		SnapThreshold: r.SnapThreshold,
		MinVisible:    r.MinVisible,
	}
}

// raise gives window i the next stack order and makes it active.
func (s *State) raise(i int) {
	s.Windows[i].StackOrder = s.NextStackOrder
	s.NextStackOrder++
	s.ActiveID = s.Windows[i].ID
}

func (s *State) focusExisting(i int, route string) {
	s.Windows[i].Minimized = false
	if route != "" {
		s.Windows[i].Route = route
	}
	s.raise(i)
}

// reelect picks the visible window with the highest stack order, or none.
func (s *State) reelect() {
	s.ActiveID = ""
	if i := s.topVisible(nil); i >= 0 {
		s.ActiveID = s.Windows[i].ID
	}
}

func (s State) topMinimized(appID string) int {
	best := -1
	for i, w := range s.Windows {
		if !w.Open || !w.Minimized || w.AppID != appID {
			continue
		}
		if best < 0 || w.StackOrder > s.Windows[best].StackOrder {
			best = i
		}
	}
	return best
}
