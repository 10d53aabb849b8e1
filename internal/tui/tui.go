// Package tui draws a desktop session in the terminal and drives it with
// the mouse: one cell is 8×16 pixels.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
)

// Options configures Run.
type Options struct {
	Config *config.Config
	// Logger must not write to the terminal being drawn on.
	Logger *slog.Logger
	// Open lists applications to open before the first frame.
	Open []string
}

// Run starts the terminal desktop and blocks until the user quits.
func Run(opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	m, err := newSessionModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func newSessionModel(opts Options) (model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	session := desktop.NewSession(desktop.Options{
		Reducer:         cfg.Reducer(),
		Logger:          logger,
		CheckInvariants: cfg.CheckInvariants,
	})
	session.BeginBoot()
	for _, id := range opts.Open {
		if _, err := session.OpenNew(id, ""); err != nil {
			return model{}, err
		}
	}
	return newModel(session), nil
}
