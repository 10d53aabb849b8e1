package daemon

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/platform"
)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler keeps the session viewport in step with the viewport source.
// The first successful poll also ends the boot phase.
type Reconciler struct {
	interval time.Duration
	session  *desktop.Session
	source   platform.ViewportSource
	logger   *slog.Logger
	// booted is unguarded: reconcile runs on one goroutine at a time.
	booted bool
}

// NewReconciler creates a new reconciler polling source every cfg.Interval.
func NewReconciler(cfg ReconcilerConfig, session *desktop.Session, source platform.ViewportSource) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Reconciler{
		interval: interval,
		session:  session,
		source:   source,
		logger:   logger,
	}
}

func (r *Reconciler) String() string {
	return "viewport-reconciler"
}

// Serve polls once immediately, then on every tick. Blocks until ctx is
// cancelled.
func (r *Reconciler) Serve(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "source", r.source.Name(), "interval", r.interval)
	r.reconcile(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return ctx.Err()
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

// reconcile performs a single pass and reports whether the viewport changed.
func (r *Reconciler) reconcile(ctx context.Context) bool {
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	size, err := r.source.Viewport(ctx)
	if err != nil {
		r.logger.Warn("reconciler: failed to read viewport", "source", r.source.Name(), "error", err)
		return false
	}
	if !size.Finite() || !size.Positive() {
		r.logger.Debug("reconciler: ignoring unusable viewport", "size", size)
		return false
	}

	changed := false
	if current := r.session.State().Viewport; current != size {
		r.logger.Info("viewport changed", "from", current, "to", size)
		r.session.SetViewport(size)
		changed = true
	}
	if !r.booted {
		r.booted = true
		r.session.EndBoot()
		r.logger.Debug("boot finished", "viewport", size)
	}
	return changed
}
