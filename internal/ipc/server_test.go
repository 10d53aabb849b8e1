package ipc

import (
	"bufio"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/wm"
)

// startTestServer runs a server on a short socket path; unix socket paths
// are length limited, which rules out t.TempDir on some systems.
func startTestServer(t *testing.T, reload func() error) (*Client, *desktop.Session) {
	t.Helper()
	dir, err := os.MkdirTemp("", "deskwm-ipc")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	session := desktop.NewSession(desktop.Options{
		Reducer:         wm.NewReducer(apps.BuiltinCatalog()),
		CheckInvariants: true,
	})
	session.SetViewport(geom.Size{Width: 1920, Height: 1080})
	controller := desktop.NewController(session)

	srv, err := NewServer(session, controller, ServerOptions{
		SocketPath: filepath.Join(dir, "d.sock"),
		SessionID:  "test-session",
		Reload:     reload,
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return NewClientWithSocket(srv.SocketPath()), session
}

func TestClientOpenListAndStatus(t *testing.T) {
	c, _ := startTestServer(t, nil)

	w, err := c.Open("developer", "", false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if w.ID != "developer-1" || !w.Active || w.Status != "normal" {
		t.Fatalf("unexpected window %+v", w)
	}
	if w.Frame != (geom.Rect{X: 192, Y: 125, Width: 1536, Height: 778}) {
		t.Fatalf("unexpected frame %v", w.Frame)
	}
	if w.Route != "/projects" {
		t.Fatalf("expected default route, got %q", w.Route)
	}

	again, err := c.Open("developer", "", false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if again.ID != w.ID {
		t.Fatalf("expected reopen to focus %s, got %s", w.ID, again.ID)
	}

	second, err := c.Open("developer", "", true)
	if err != nil {
		t.Fatalf("Open new: %v", err)
	}
	if second.ID != "developer-2" {
		t.Fatalf("expected second instance, got %s", second.ID)
	}

	list, err := c.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	if len(list.Windows) != 2 || list.ActiveID != "developer-2" {
		t.Fatalf("unexpected windows %+v", list)
	}

	status, err := c.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.SessionID != "test-session" || status.WindowCount != 2 || !status.DaemonRunning {
		t.Fatalf("unexpected status %+v", status)
	}
	if len(status.Running) != 1 || status.Running[0] != "developer" {
		t.Fatalf("unexpected running apps %v", status.Running)
	}

	appsData, err := c.ListApps()
	if err != nil {
		t.Fatalf("ListApps: %v", err)
	}
	if len(appsData.Applications) != len(apps.Builtin()) {
		t.Fatalf("expected %d apps, got %d", len(apps.Builtin()), len(appsData.Applications))
	}
}

func TestClientDragAndResizeEdge(t *testing.T) {
	c, _ := startTestServer(t, nil)

	if _, err := c.Open("developer", "", false); err != nil {
		t.Fatalf("Open: %v", err)
	}

	w, err := c.Drag("developer-1", -5000, -5000)
	if err != nil {
		t.Fatalf("Drag: %v", err)
	}
	if w.Position != (geom.Point{X: -1486, Y: 28}) {
		t.Fatalf("expected clamped position, got %v", w.Position)
	}

	if _, err := c.Move("developer-1", 192, 125); err != nil {
		t.Fatalf("Move: %v", err)
	}
	w, err = c.ResizeEdge("developer-1", "w", 2000, 0)
	if err != nil {
		t.Fatalf("ResizeEdge: %v", err)
	}
	if w.Size.Width != 600 || w.Position.X != 1128 {
		t.Fatalf("expected minimum width with right edge fixed, got %v at %v", w.Size, w.Position)
	}

	if _, err := c.ResizeEdge("developer-1", "diagonal", 1, 1); err == nil {
		t.Fatalf("expected invalid direction to fail")
	}
}

func TestClientWindowActions(t *testing.T) {
	c, _ := startTestServer(t, nil)

	if _, err := c.Open("notes", "", false); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := c.Open("terminal", "", false); err != nil {
		t.Fatalf("Open: %v", err)
	}

	w, err := c.Maximize("notes-1")
	if err != nil {
		t.Fatalf("Maximize: %v", err)
	}
	if w.Status != "maximized" || w.Frame != (geom.Rect{X: 0, Y: 28, Width: 1920, Height: 972}) {
		t.Fatalf("unexpected maximized window %+v", w)
	}
	if _, err := c.Drag("notes-1", 10, 10); err == nil || !strings.Contains(err.Error(), "maximized") {
		t.Fatalf("expected maximized drag to fail, got %v", err)
	}

	w, err = c.Minimize("notes-1")
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if w.Status != "minimized" {
		t.Fatalf("expected minimized, got %s", w.Status)
	}

	w, err = c.Restore("notes-1")
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if w.Status != "normal" || !w.Active {
		t.Fatalf("expected restored and focused, got %+v", w)
	}

	if _, err := c.Focus("terminal-2"); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	w, err = c.Navigate("terminal-2", "/logs")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if w.Route != "/logs" {
		t.Fatalf("expected route /logs, got %q", w.Route)
	}

	front, err := c.Front()
	if err != nil {
		t.Fatalf("Front: %v", err)
	}
	if front.ActiveID != "terminal-2" {
		t.Fatalf("expected terminal-2 to stay active, got %s", front.ActiveID)
	}

	if err := c.Close("notes-1"); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close("notes-1"); err == nil || !strings.Contains(err.Error(), "unknown window") {
		t.Fatalf("expected unknown window error, got %v", err)
	}
	if _, err := c.Open("spreadsheet", "", false); err == nil || !strings.Contains(err.Error(), "unknown application") {
		t.Fatalf("expected unknown application error, got %v", err)
	}
}

func TestClientSetViewport(t *testing.T) {
	c, session := startTestServer(t, nil)

	if err := c.SetViewport(1280, 800); err != nil {
		t.Fatalf("SetViewport: %v", err)
	}
	if got := session.State().Viewport; got != (geom.Size{Width: 1280, Height: 800}) {
		t.Fatalf("unexpected viewport %v", got)
	}
	if err := c.SetViewport(0, 800); err == nil {
		t.Fatalf("expected zero width to be rejected")
	}
}

func TestClientReload(t *testing.T) {
	c, _ := startTestServer(t, nil)
	if err := c.Reload(); err == nil {
		t.Fatalf("expected reload without handler to fail")
	}

	calls := 0
	c, _ = startTestServer(t, func() error {
		calls++
		if calls > 1 {
			return errors.New("broken config")
		}
		return nil
	})
	if err := c.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if err := c.Reload(); err == nil || !strings.Contains(err.Error(), "broken config") {
		t.Fatalf("expected reload error, got %v", err)
	}
}

func TestServerRejectsUnknownCommand(t *testing.T) {
	c, _ := startTestServer(t, nil)

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(`{"command":"SHUFFLE"}` + "\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(line, `"status":"ERROR"`) || !strings.Contains(line, "Unknown command: SHUFFLE") {
		t.Fatalf("unexpected response %s", line)
	}
}

func TestClientWithoutDaemon(t *testing.T) {
	c := NewClientWithSocket(filepath.Join(t.TempDir(), "missing.sock"))
	if err := c.Ping(); err == nil || !strings.Contains(err.Error(), "is the daemon running?") {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestClientTile(t *testing.T) {
	c, _ := startTestServer(t, nil)
	if _, err := c.Open("developer", "", false); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := c.Open("terminal", "", false); err != nil {
		t.Fatalf("Open: %v", err)
	}

	data, err := c.Tile(TilePayload{Mode: "horizontal", Gap: 10})
	if err != nil {
		t.Fatalf("Tile: %v", err)
	}
	if len(data.Windows) != 2 || data.ActiveID != "terminal-2" {
		t.Fatalf("unexpected tile result %+v", data)
	}
	frames := map[string]geom.Rect{}
	for _, w := range data.Windows {
		frames[w.ID] = w.Frame
	}
	if frames["terminal-2"] != (geom.Rect{X: 10, Y: 38, Width: 945, Height: 952}) {
		t.Fatalf("unexpected terminal frame %v", frames["terminal-2"])
	}
	if frames["developer-1"] != (geom.Rect{X: 965, Y: 38, Width: 945, Height: 952}) {
		t.Fatalf("unexpected developer frame %v", frames["developer-1"])
	}

	if _, err := c.Tile(TilePayload{Mode: "spiral"}); err == nil || !strings.Contains(err.Error(), "unknown tiling mode") {
		t.Fatalf("expected unknown mode error, got %v", err)
	}
}
