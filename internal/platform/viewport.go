package platform

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/deskwm/internal/geom"
)

// Cell size used to turn terminal cells into desktop pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)

// ViewportSource reports the live size of the desktop.
type ViewportSource interface {
	Name() string
	Viewport(ctx context.Context) (geom.Size, error)
}

// Closer is implemented by sources holding a display connection.
type Closer interface {
	Close()
}

// Static always reports the same size.
type Static struct {
	Size geom.Size
}

func (s Static) Name() string { return "static" }

func (s Static) Viewport(ctx context.Context) (geom.Size, error) {
	return s.Size, nil
}

// Terminal reports the size of a terminal in pixels, one cell being
// CellWidth x CellHeight.
type Terminal struct {
	fd int
}

// NewTerminal uses stdout, falling back to stdin when stdout is redirected.
func NewTerminal() (*Terminal, error) {
	for _, f := range []*os.File{os.Stdout, os.Stdin} {
		if term.IsTerminal(int(f.Fd())) {
			return &Terminal{fd: int(f.Fd())}, nil
		}
	}
	return nil, errors.New("no terminal attached")
}

func (t *Terminal) Name() string { return "terminal" }

func (t *Terminal) Viewport(ctx context.Context) (geom.Size, error) {
	cols, rows, err := term.GetSize(t.fd)
	if err != nil {
		return geom.Size{}, fmt.Errorf("terminal size: %w", err)
	}
	return CellsToPixels(cols, rows), nil
}

// CellsToPixels converts a cell grid into a pixel size.
func CellsToPixels(cols, rows int) geom.Size {
	return geom.Size{Width: float64(cols * CellWidth), Height: float64(rows * CellHeight)}
}

// PixelsToCells converts a pixel position into the cell containing it.
func PixelsToCells(p geom.Point) (col, row int) {
	return int(p.X) / CellWidth, int(p.Y) / CellHeight
}

// Options selects and configures a viewport source.
type Options struct {
	// Kind is one of auto, x11, terminal or static.
	Kind     string
	Display  string
	Fallback geom.Size
}

// New builds the requested source. In auto mode X11 is tried first, then the
// terminal, then the static fallback.
func New(opts Options) (ViewportSource, error) {
	switch opts.Kind {
	case "static":
		return Static{Size: opts.Fallback}, nil
	case "x11":
		return NewX11(opts.Display)
	case "terminal":
		return NewTerminal()
	case "", "auto":
		if src, err := NewX11(opts.Display); err == nil {
			return src, nil
		}
		if src, err := NewTerminal(); err == nil {
			return src, nil
		}
		return Static{Size: opts.Fallback}, nil
	default:
		return nil, fmt.Errorf("unknown viewport source %q", opts.Kind)
	}
}
