package daemon

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/platform"
)

type scriptedSource struct {
	steps []scriptedStep
	i     int
}

type scriptedStep struct {
	size geom.Size
	err  error
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) Viewport(ctx context.Context) (geom.Size, error) {
	step := s.steps[s.i]
	if s.i < len(s.steps)-1 {
		s.i++
	}
	return step.size, step.err
}

func TestReconcilerAppliesViewportAndEndsBoot(t *testing.T) {
	session := desktop.NewSession(desktop.Options{Reducer: config.DefaultConfig().Reducer()})
	session.BeginBoot()

	src := &scriptedSource{steps: []scriptedStep{
		{err: errors.New("display gone")},
		{size: geom.Size{Width: 1920, Height: 1080}},
		{size: geom.Size{Width: 1920, Height: 1080}},
		{size: geom.Size{Width: math.NaN(), Height: 1080}},
		{size: geom.Size{}},
		{size: geom.Size{Width: 2560, Height: 1440}},
	}}
	r := NewReconciler(ReconcilerConfig{}, session, src)
	ctx := context.Background()

	if r.reconcile(ctx) {
		t.Fatalf("expected failed read to change nothing")
	}
	if !session.State().Booting {
		t.Fatalf("expected boot flag to survive a failed read")
	}

	if !r.reconcile(ctx) {
		t.Fatalf("expected first viewport to be applied")
	}
	st := session.State()
	if st.Booting {
		t.Fatalf("expected boot flag cleared after first viewport")
	}
	if st.Viewport != (geom.Size{Width: 1920, Height: 1080}) {
		t.Fatalf("unexpected viewport %v", st.Viewport)
	}

	rev := session.Revision()
	if r.reconcile(ctx) {
		t.Fatalf("expected unchanged viewport to be a no-op")
	}
	if session.Revision() != rev {
		t.Fatalf("expected no dispatch for unchanged viewport")
	}

	for i := 0; i < 2; i++ {
		if r.reconcile(ctx) {
			t.Fatalf("expected unusable viewport to be ignored")
		}
	}
	if !r.reconcile(ctx) {
		t.Fatalf("expected resize to be applied")
	}
	if got := session.State().Viewport; got != (geom.Size{Width: 2560, Height: 1440}) {
		t.Fatalf("unexpected viewport %v", got)
	}
}

func shortTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "deskwm-d")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestDaemonRunServesIPC(t *testing.T) {
	dir := shortTempDir(t)
	socket := filepath.Join(dir, "d.sock")

	d, err := New(Options{
		Config:     config.DefaultConfig(),
		ConfigPath: filepath.Join(dir, "missing.yaml"),
		Source:     platform.Static{Size: geom.Size{Width: 1280, Height: 800}},
		SocketPath: socket,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.ID() == "" {
		t.Fatalf("expected a session id")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	client := ipc.NewClientWithSocket(socket)
	var status *ipc.StatusData
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		status, err = client.GetStatus()
		if err == nil && !status.Booting && status.Viewport.Width == 1280 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.SessionID != d.ID() {
		t.Fatalf("expected session id %s, got %s", d.ID(), status.SessionID)
	}
	if status.Booting || status.Viewport != (geom.Size{Width: 1280, Height: 800}) {
		t.Fatalf("expected reconciled viewport, got %+v", status)
	}

	w, err := client.Open("terminal", "", false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if w.ID != "terminal-1" {
		t.Fatalf("unexpected window %s", w.ID)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("daemon did not stop")
	}
}

func TestDaemonReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("snap_threshold: 8\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d, err := New(Options{
		ConfigPath: path,
		Source:     platform.Static{Size: geom.Size{Width: 1920, Height: 1080}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := d.Session().Bounds().SnapThreshold; got != 20 {
		t.Fatalf("expected default snap threshold, got %v", got)
	}

	if err := d.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := d.Session().Bounds().SnapThreshold; got != 8 {
		t.Fatalf("expected reloaded snap threshold, got %v", got)
	}
	if d.Config().SnapThreshold != 8 {
		t.Fatalf("expected config to be replaced")
	}

	if err := os.WriteFile(path, []byte("snap_threshold: -1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := d.Reload(); err == nil {
		t.Fatalf("expected invalid config to be rejected")
	}
	if got := d.Session().Bounds().SnapThreshold; got != 8 {
		t.Fatalf("expected previous reducer to stay, got %v", got)
	}
}
