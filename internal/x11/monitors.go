package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/deskwm/internal/geom"
)

// Monitor is one enabled CRTC in root coordinates.
type Monitor struct {
	Name   string
	Bounds geom.Rect
}

func (m Monitor) contains(x, y int) bool {
	px, py, b := float64(x), float64(y), m.Bounds
	return px >= b.X && px < b.Right() && py >= b.Y && py < b.Bottom()
}

// Monitors lists the enabled outputs through RandR.
func (d *Display) Monitors() ([]Monitor, error) {
	if err := randr.Init(d.conn()); err != nil {
		return nil, fmt.Errorf("randr init: %w", err)
	}
	res, err := randr.GetScreenResources(d.conn(), d.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("screen resources: %w", err)
	}

	var out []Monitor
	for i, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(d.conn(), crtc, res.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		name := fmt.Sprintf("crtc-%d", i)
		if o, err := randr.GetOutputInfo(d.conn(), info.Outputs[0], res.ConfigTimestamp).Reply(); err == nil {
			name = string(o.Name)
		}
		out = append(out, Monitor{
			Name:   name,
			Bounds: geom.Rect{X: float64(info.X), Y: float64(info.Y), Width: float64(info.Width), Height: float64(info.Height)},
		})
	}
	return out, nil
}

// RootSize is the size of the whole X screen.
func (d *Display) RootSize() (geom.Size, error) {
	g, err := xproto.GetGeometry(d.conn(), xproto.Drawable(d.root)).Reply()
	if err != nil {
		return geom.Size{}, fmt.Errorf("root geometry: %w", err)
	}
	return geom.Size{Width: float64(g.Width), Height: float64(g.Height)}, nil
}

// ActiveMonitor picks the monitor holding the focused window, then the one
// under the pointer, then the first. Without RandR the root window counts as
// a single monitor.
func (d *Display) ActiveMonitor() (Monitor, error) {
	monitors, err := d.Monitors()
	if err != nil || len(monitors) == 0 {
		size, rootErr := d.RootSize()
		if rootErr != nil {
			if err != nil {
				return Monitor{}, fmt.Errorf("%w (root fallback: %v)", err, rootErr)
			}
			return Monitor{}, rootErr
		}
		return Monitor{Name: "root", Bounds: geom.Rect{Width: size.Width, Height: size.Height}}, nil
	}

	for _, probe := range []func() (int, int, bool){d.focusedCenter, d.pointer} {
		if x, y, ok := probe(); ok {
			if m, ok := monitorAt(monitors, x, y); ok {
				return m, nil
			}
		}
	}
	return monitors[0], nil
}

func (d *Display) focusedCenter() (int, int, bool) {
	win, err := ewmh.ActiveWindowGet(d.xu)
	if err != nil || win == 0 {
		return 0, 0, false
	}
	g, err := xproto.GetGeometry(d.conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return 0, 0, false
	}
	tr, err := xproto.TranslateCoordinates(d.conn(), win, d.root, 0, 0).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(tr.DstX) + int(g.Width)/2, int(tr.DstY) + int(g.Height)/2, true
}

func (d *Display) pointer() (int, int, bool) {
	p, err := xproto.QueryPointer(d.conn(), d.root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(p.RootX), int(p.RootY), true
}

func monitorAt(monitors []Monitor, x, y int) (Monitor, bool) {
	for _, m := range monitors {
		if m.contains(x, y) {
			return m, true
		}
	}
	return Monitor{}, false
}
