package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/geometry"
)

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestModel opens notes on a 240x68 cell terminal (1920x1088 px). The
// window lands at 192,126 sized 1536x784, i.e. cells 24,7 to 215,56.
func newTestModel(t *testing.T) model {
	t.Helper()
	m, err := newSessionModel(Options{Config: config.DefaultConfig()})
	if err != nil {
		t.Fatalf("newSessionModel: %v", err)
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 240, Height: 68})
	if _, err := m.session.Open("notes", ""); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return m
}

func TestCellBoxOf(t *testing.T) {
	got := cellBoxOf(geom.Rect{X: 192, Y: 126, Width: 1536, Height: 784})
	want := cellBox{x1: 24, y1: 7, x2: 215, y2: 56}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	neg := cellBoxOf(geom.Rect{X: -20, Y: 28, Width: 100, Height: 100})
	if neg.x1 != -3 {
		t.Fatalf("expected negative columns to floor, got %+v", neg)
	}
}

func TestHitZone(t *testing.T) {
	b := cellBox{x1: 10, y1: 5, x2: 40, y2: 20}
	tests := []struct {
		name string
		col  int
		row  int
		zone zone
		dir  geometry.Direction
	}{
		{"title", 20, 5, zoneTitle, 0},
		{"minimize", 34, 5, zoneMinimize, 0},
		{"maximize", 36, 5, zoneMaximize, 0},
		{"close", 38, 5, zoneClose, 0},
		{"north west", 10, 5, zoneBorder, geometry.NorthWest},
		{"north east", 40, 5, zoneBorder, geometry.NorthEast},
		{"west", 10, 12, zoneBorder, geometry.West},
		{"east", 40, 12, zoneBorder, geometry.East},
		{"south", 25, 20, zoneBorder, geometry.South},
		{"south east", 40, 20, zoneBorder, geometry.SouthEast},
		{"south west", 10, 20, zoneBorder, geometry.SouthWest},
		{"body", 20, 12, zoneBody, 0},
		{"outside", 41, 12, zoneNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, dir := hitZone(b, tt.col, tt.row)
			if z != tt.zone || dir != tt.dir {
				t.Fatalf("expected %v/%v, got %v/%v", tt.zone, tt.dir, z, dir)
			}
		})
	}

	narrow := cellBox{x1: 0, y1: 0, x2: 8, y2: 4}
	if z, _ := hitZone(narrow, 6, 0); z != zoneTitle {
		t.Fatalf("expected narrow title bar without buttons, got %v", z)
	}
}

func TestWindowSizeSetsViewportAndEndsBoot(t *testing.T) {
	m, err := newSessionModel(Options{})
	if err != nil {
		t.Fatalf("newSessionModel: %v", err)
	}
	if !m.session.State().Booting {
		t.Fatalf("expected session to boot")
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	st := m.session.State()
	if st.Booting {
		t.Fatalf("expected boot to end with the first size")
	}
	if st.Viewport != (geom.Size{Width: 1280, Height: 800}) {
		t.Fatalf("unexpected viewport %v", st.Viewport)
	}
}

func TestTitleBarDragCommitsOnRelease(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, press(50, 7))
	if m.gesture.kind != gestureDrag {
		t.Fatalf("expected drag gesture, got %v (%s)", m.gesture.kind, m.status)
	}
	m = update(t, m, motion(40, 9))
	if m.gesture.offset != (geom.Point{X: -80, Y: 32}) {
		t.Fatalf("unexpected live offset %v", m.gesture.offset)
	}
	w, _ := m.session.Window("notes-1")
	if w.Position != (geom.Point{X: 192, Y: 126}) {
		t.Fatalf("expected no commit during drag, got %v", w.Position)
	}

	m = update(t, m, release(40, 9))
	w, _ = m.session.Window("notes-1")
	if w.Position != (geom.Point{X: 112, Y: 158}) {
		t.Fatalf("expected committed position 112,158, got %v", w.Position)
	}
	if m.gesture.kind != gestureNone || m.controller.ActiveInteractions() != 0 {
		t.Fatalf("expected gesture to end")
	}
}

func TestBorderResizeCommitsWhileMoving(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, press(215, 56))
	if m.gesture.kind != gestureResize {
		t.Fatalf("expected resize gesture, got %v (%s)", m.gesture.kind, m.status)
	}
	if dir, ok := m.controller.Resizing("notes-1"); !ok || dir != geometry.SouthEast {
		t.Fatalf("expected south east resize, got %v %v", dir, ok)
	}

	m = update(t, m, motion(205, 50))
	w, _ := m.session.Window("notes-1")
	if w.Size != (geom.Size{Width: 1456, Height: 688}) {
		t.Fatalf("expected live size 1456x688, got %v", w.Size)
	}
	m = update(t, m, release(205, 50))
	w, _ = m.session.Window("notes-1")
	if w.Size != (geom.Size{Width: 1456, Height: 688}) || w.Position != (geom.Point{X: 192, Y: 126}) {
		t.Fatalf("unexpected frame after resize %v at %v", w.Size, w.Position)
	}
}

func TestTitleBarButtons(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, press(211, 7))
	m = update(t, m, release(211, 7))
	w, _ := m.session.Window("notes-1")
	if !w.Maximized {
		t.Fatalf("expected maximize button to maximize")
	}

	// Maximized frame is 0,28 1920x980: cells 0,1 to 239,62.
	m = update(t, m, press(50, 1))
	if m.gesture.kind != gestureNone || !strings.Contains(m.status, "restore") {
		t.Fatalf("expected maximized drag to be refused, got %v %q", m.gesture.kind, m.status)
	}

	m = update(t, m, press(235, 1))
	w, _ = m.session.Window("notes-1")
	if w.Maximized {
		t.Fatalf("expected maximize button to restore")
	}

	m = update(t, m, press(209, 7))
	w, _ = m.session.Window("notes-1")
	if !w.Minimized {
		t.Fatalf("expected minimize button to minimize")
	}

	// The dock brings it back.
	for _, it := range m.dockItems() {
		if it.appID == "notes" {
			m = update(t, m, press(it.x1, 67))
		}
	}
	w, _ = m.session.Window("notes-1")
	if w.Minimized {
		t.Fatalf("expected dock click to restore notes")
	}

	m = update(t, m, press(213, 7))
	if len(m.session.Windows()) != 0 {
		t.Fatalf("expected close button to close the window")
	}
}

func TestKeyboardShortcuts(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, key("a"))
	if !m.showLauncher {
		t.Fatalf("expected launcher to open")
	}
	m = update(t, m, key("enter"))
	if m.showLauncher {
		t.Fatalf("expected launcher to close after opening")
	}
	if _, ok := m.session.Window("browser-2"); !ok {
		t.Fatalf("expected browser to open, status %q", m.status)
	}

	m = update(t, m, key("tab"))
	if active, _ := m.session.ActiveWindow(); active.ID != "notes-1" {
		t.Fatalf("expected tab to focus notes-1, got %s", active.ID)
	}

	m = update(t, m, key("x"))
	if w, _ := m.session.Window("notes-1"); !w.Maximized {
		t.Fatalf("expected x to maximize")
	}
	m = update(t, m, key("m"))
	if w, _ := m.session.Window("notes-1"); !w.Minimized {
		t.Fatalf("expected m to minimize")
	}
	if active, _ := m.session.ActiveWindow(); active.ID != "browser-2" {
		t.Fatalf("expected focus to fall back to browser-2, got %s", active.ID)
	}
	m = update(t, m, key("w"))
	if _, ok := m.session.Window("browser-2"); ok {
		t.Fatalf("expected w to close browser-2")
	}

	m = update(t, m, key("a"))
	m = update(t, m, key("esc"))
	if m.showLauncher {
		t.Fatalf("expected esc to dismiss launcher")
	}
}

func TestTileShortcut(t *testing.T) {
	m := newTestModel(t)
	if _, err := m.session.Open("terminal", ""); err != nil {
		t.Fatalf("Open: %v", err)
	}
	m = update(t, m, key("t"))
	if f, _ := m.session.Frame("terminal-2"); f != (geom.Rect{X: 0, Y: 28, Width: 960, Height: 980}) {
		t.Fatalf("unexpected terminal frame %v (status %q)", f, m.status)
	}
	if f, _ := m.session.Frame("notes-1"); f != (geom.Rect{X: 960, Y: 28, Width: 960, Height: 980}) {
		t.Fatalf("unexpected notes frame %v", f)
	}
	if m.status != "tiled 2 windows" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestViewDrawsWindowsAndDock(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "Notes") {
		t.Fatalf("expected window title in view")
	}
	if !strings.Contains(out, "Terminal") {
		t.Fatalf("expected dock entries in view")
	}
	if lines := strings.Count(out, "\n") + 1; lines != 68 {
		t.Fatalf("expected 68 lines, got %d", lines)
	}
}
