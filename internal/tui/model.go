package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/platform"
	"github.com/1broseidon/deskwm/internal/tiling"
	"github.com/1broseidon/deskwm/internal/wm"
)

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureDrag
	gestureResize
)

// gesture is the pointer interaction in progress, if any.
type gesture struct {
	kind     gestureKind
	id       string
	startCol int
	startRow int
	// offset is the live drag transform, drawn but not committed.
	offset geom.Point
}

// model is the root bubbletea model: a desktop drawn from an in-process
// session.
type model struct {
	session    *desktop.Session
	controller *desktop.Controller

	launcher     list.Model
	showLauncher bool

	gesture gesture
	status  string
	booted  bool

	width  int
	height int
}

func newModel(session *desktop.Session) model {
	return model{
		session:    session,
		controller: desktop.NewController(session),
		launcher:   newLauncher(session.Applications()),
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.session.SetViewport(platform.CellsToPixels(msg.Width, msg.Height))
		if !m.booted {
			m.booted = true
			m.session.EndBoot()
		}
		m.launcher.SetSize(min(48, msg.Width-4), max(msg.Height-6, 4))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showLauncher {
			return m.updateLauncher(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.showLauncher {
			return m, nil
		}
		return m.handleMouse(msg), nil
	}
	return m, nil
}

func (m model) updateLauncher(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "a":
		m.showLauncher = false
		return m, nil
	case "enter", "n":
		item, ok := m.launcher.SelectedItem().(appItem)
		if !ok {
			return m, nil
		}
		open := m.session.Open
		if msg.String() == "n" {
			open = m.session.OpenNew
		}
		if w, err := open(item.desc.ID, ""); err != nil {
			m.status = err.Error()
		} else {
			m.status = "opened " + w.ID
		}
		m.showLauncher = false
		return m, nil
	}
	var cmd tea.Cmd
	m.launcher, cmd = m.launcher.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active, hasActive := m.session.ActiveWindow()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a":
		m.launcher.SetItems(launcherItems(m.session.Applications(), m.runningCounts()))
		m.showLauncher = true
	case "tab":
		// Focusing the bottom visible window rotates the stack.
		if vis := m.session.State().VisibleWindows(); len(vis) > 1 {
			m.report(m.session.Focus(vis[0].ID))
		}
	case "f":
		m.session.BringAllToFront()
		m.status = "all windows raised"
	case "t":
		if tiled, err := m.controller.Tile(tiling.DefaultLayout()); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("tiled %d windows", len(tiled))
		}
	case "m":
		if hasActive {
			m.report(m.session.Minimize(active.ID))
		}
	case "x":
		if hasActive {
			m.toggleMaximize(active)
		}
	case "w":
		if hasActive {
			m.closeWindow(active.ID)
		}
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) model {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.press(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		m.motion(msg.X, msg.Y)
	case tea.MouseActionRelease:
		m.release(msg.X, msg.Y)
	}
	return *m
}

func (m *model) press(col, row int) {
	if m.gesture.kind != gestureNone {
		m.release(col, row)
	}
	if row >= m.dockTop() {
		m.pressDock(col)
		return
	}

	w, z, dir := m.windowAtCell(col, row)
	if z == zoneNone {
		return
	}
	if _, err := m.session.Focus(w.ID); err != nil {
		m.status = err.Error()
		return
	}

	switch z {
	case zoneClose:
		m.closeWindow(w.ID)
	case zoneMinimize:
		m.report(m.session.Minimize(w.ID))
	case zoneMaximize:
		m.toggleMaximize(w)
	case zoneTitle:
		if err := m.controller.BeginDrag(w.ID); err != nil {
			m.status = explain(err)
			return
		}
		m.gesture = gesture{kind: gestureDrag, id: w.ID, startCol: col, startRow: row}
	case zoneBorder:
		if err := m.controller.BeginResize(w.ID, dir); err != nil {
			m.status = explain(err)
			return
		}
		m.gesture = gesture{kind: gestureResize, id: w.ID, startCol: col, startRow: row}
	}
}

func (m *model) motion(col, row int) {
	g := &m.gesture
	delta := cellDelta(g.startCol, g.startRow, col, row)
	switch g.kind {
	case gestureDrag:
		off, err := m.controller.DragMove(g.id, delta)
		if err != nil {
			m.status = err.Error()
			return
		}
		g.offset = off
	case gestureResize:
		if _, err := m.controller.ResizeMove(g.id, delta); err != nil {
			m.status = err.Error()
		}
	}
}

func (m *model) release(col, row int) {
	g := m.gesture
	m.gesture = gesture{}
	delta := cellDelta(g.startCol, g.startRow, col, row)
	switch g.kind {
	case gestureDrag:
		w, err := m.controller.EndDrag(g.id, delta)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.status = fmt.Sprintf("%s at %.0f,%.0f", w.ID, w.Position.X, w.Position.Y)
	case gestureResize:
		if err := m.controller.EndResize(g.id); err != nil {
			m.status = err.Error()
			return
		}
		if w, ok := m.session.Window(g.id); ok {
			m.status = fmt.Sprintf("%s is %.0f×%.0f", w.ID, w.Size.Width, w.Size.Height)
		}
	}
}

func (m *model) pressDock(col int) {
	for _, it := range m.dockItems() {
		if col < it.x1 || col > it.x2 {
			continue
		}
		m.report(m.session.Open(it.appID, ""))
		return
	}
}

func (m *model) toggleMaximize(w wm.Window) {
	if w.Maximized {
		m.report(m.session.Restore(w.ID))
		return
	}
	m.report(m.session.Maximize(w.ID))
}

func (m *model) closeWindow(id string) {
	m.controller.Forget(id)
	if m.gesture.id == id {
		m.gesture = gesture{}
	}
	if err := m.session.Close(id); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "closed " + id
}

func (m *model) report(w wm.Window, err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("%s %s", w.ID, w.Status())
}

func explain(err error) string {
	switch {
	case errors.Is(err, desktop.ErrMaximized):
		return "restore the window before moving it"
	case errors.Is(err, desktop.ErrInteractionBusy):
		return "window is busy"
	default:
		return err.Error()
	}
}

// windowAtCell returns the topmost visible window under a cell.
func (m model) windowAtCell(col, row int) (wm.Window, zone, geometry.Direction) {
	st := m.session.State()
	ws := st.VisibleWindows()
	for i := len(ws) - 1; i >= 0; i-- {
		frame := wm.FrameOf(ws[i], st.Viewport, m.session.Metrics())
		if z, dir := hitZone(cellBoxOf(frame), col, row); z != zoneNone {
			return ws[i], z, dir
		}
	}
	return wm.Window{}, zoneNone, 0
}

func (m model) runningCounts() map[string]int {
	counts := map[string]int{}
	for _, w := range m.session.Windows() {
		counts[w.AppID]++
	}
	return counts
}

// dockTop is the first row of the bottom strip.
func (m model) dockTop() int {
	strip := int(m.session.Metrics().BottomStrip) / platform.CellHeight
	if strip < 1 {
		strip = 1
	}
	return m.height - strip
}

func (m model) dockItems() []dockItem {
	running := m.runningCounts()
	descs := m.session.Applications()
	items := make([]dockItem, 0, len(descs))
	for _, d := range descs {
		mark := "·"
		if running[d.ID] > 0 {
			mark = "●"
		}
		items = append(items, dockItem{
			appID:   d.ID,
			label:   " " + d.Name + " " + mark + " ",
			running: running[d.ID] > 0,
		})
	}
	return layoutDock(items, m.width)
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showLauncher {
		menu := m.renderMenuBar()
		box := launcherBoxStyle.Render(m.launcher.View())
		return lipgloss.JoinVertical(lipgloss.Left,
			menu,
			lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box),
		)
	}

	c := newCanvas(m.width, m.height)
	c.fill(0, 0, m.width-1, m.height-1, ' ', styleDesktop)

	st := m.session.State()
	metrics := m.session.Metrics()
	for _, w := range st.VisibleWindows() {
		frame := wm.FrameOf(w, st.Viewport, metrics)
		if m.gesture.kind == gestureDrag && m.gesture.id == w.ID {
			frame.X += m.gesture.offset.X
			frame.Y += m.gesture.offset.Y
		}
		title := w.AppID
		if desc, ok := m.session.Application(w.AppID); ok {
			title = desc.Name
		}
		drawWindow(c, windowView{title: title, route: w.Route, frame: frame, active: w.ID == st.ActiveID})
	}

	top := m.dockTop()
	c.fill(0, top, m.width-1, m.height-1, ' ', styleDock)
	row := top + (m.height-top)/2
	for _, it := range m.dockItems() {
		dst := styleDock
		if it.running {
			dst = styleDockRunning
		}
		c.text(it.x1, row, it.label, dst, m.width)
	}

	lines := strings.SplitN(c.String(), "\n", 2)
	rest := ""
	if len(lines) == 2 {
		rest = lines[1]
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderMenuBar(), rest)
}

func (m model) renderMenuBar() string {
	left := "deskwm"
	if w, ok := m.session.ActiveWindow(); ok {
		left += "  │  " + w.ID
		if w.Route != "" {
			left += " " + w.Route
		}
	}
	if m.status != "" {
		left += "  │  " + m.status
	}
	help := "a: apps  tab: cycle  m: min  x: max  w: close  f: front  t: tile  q: quit"
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(help) - 2
	line := left
	if gap > 0 {
		line = left + strings.Repeat(" ", gap) + help
	}
	return palette[styleMenu].Width(m.width).MaxWidth(m.width).Padding(0, 1).Render(line)
}
