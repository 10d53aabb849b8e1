// Package daemon hosts a desktop session and its supervised services.
package daemon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phsym/console-slog"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/httpapi"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/platform"
)

// NewLogger returns the daemon's console logger.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(console.NewHandler(w, &console.HandlerOptions{Level: level}))
}

// Options configures a Daemon.
type Options struct {
	Config *config.Config
	// ConfigPath is re-read on RELOAD. Empty uses the default lookup.
	ConfigPath string
	Logger     *slog.Logger
	// Source overrides the viewport source chosen from Config.
	Source platform.ViewportSource
	// SocketPath overrides the IPC socket location.
	SocketPath string
}

// Daemon owns the session and the services exposing it.
type Daemon struct {
	id         string
	configPath string
	logger     *slog.Logger
	session    *desktop.Session
	controller *desktop.Controller
	source     platform.ViewportSource
	socketPath string

	mu  sync.Mutex
	cfg *config.Config
}

// New builds a daemon and its session. The viewport source is resolved
// here so that configuration mistakes surface before anything listens.
func New(opts Options) (*Daemon, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	id := uuid.NewString()
	logger = logger.With("session", id)

	source := opts.Source
	if source == nil {
		var err error
		source, err = platform.New(platform.Options{
			Kind:     string(cfg.ViewportSource),
			Display:  cfg.Display,
			Fallback: cfg.Viewport.Size(),
		})
		if err != nil {
			return nil, fmt.Errorf("viewport source: %w", err)
		}
	}

	session := desktop.NewSession(desktop.Options{
		Reducer:         cfg.Reducer(),
		Logger:          logger.With("component", "session"),
		CheckInvariants: cfg.CheckInvariants,
	})

	return &Daemon{
		id:         id,
		configPath: opts.ConfigPath,
		logger:     logger,
		session:    session,
		controller: desktop.NewController(session),
		source:     source,
		socketPath: opts.SocketPath,
		cfg:        cfg,
	}, nil
}

// ID returns the session id assigned at start.
func (d *Daemon) ID() string { return d.id }

// Session returns the hosted session.
func (d *Daemon) Session() *desktop.Session { return d.session }

// Config returns the configuration currently in effect.
func (d *Daemon) Config() *config.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// Run starts every service and blocks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	cfg := d.Config()
	d.session.BeginBoot()
	d.logger.Info("daemon starting", "viewport_source", d.source.Name(), "applications", len(cfg.Applications))

	if c, ok := d.source.(platform.Closer); ok {
		defer c.Close()
	}

	srv, err := ipc.NewServer(d.session, d.controller, ipc.ServerOptions{
		SocketPath: d.socketPath,
		SessionID:  d.id,
		Logger:     d.logger.With("component", "ipc"),
		Reload:     d.Reload,
	})
	if err != nil {
		return err
	}

	super := newSupervisor("deskwm", d.logger)
	add(super, serviceFunc{name: "ipc", fn: srv.Serve})
	add(super, NewReconciler(ReconcilerConfig{
		Interval: cfg.PollInterval(),
		Logger:   d.logger.With("component", "reconciler"),
	}, d.session, d.source))
	if cfg.HTTPListen != "" {
		add(super, httpapi.New(cfg.HTTPListen, d.session, d.controller, d.logger.With("component", "http")))
	}

	err = super.Serve(ctx)
	d.logger.Info("daemon stopped")
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Reload re-reads the configuration and swaps the session's reducer.
// Viewport source, socket and HTTP listener changes need a restart.
func (d *Daemon) Reload() error {
	path := d.configPath
	if path == "" {
		p, err := config.DefaultConfigPathOrEnv()
		if err != nil {
			return err
		}
		path = p
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.cfg = res.Config
	d.mu.Unlock()
	d.session.SetReducer(res.Config.Reducer())
	d.logger.Info("configuration reloaded", "path", path, "applications", len(res.Config.Applications))
	return nil
}
