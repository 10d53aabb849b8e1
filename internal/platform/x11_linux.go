//go:build linux

package platform

import (
	"context"
	"fmt"
	"os"

	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/x11"
)

// X11 reports the size of the active monitor of an X display.
type X11 struct {
	conn *x11.Display
}

// NewX11 connects to display, or $DISPLAY when empty.
func NewX11(display string) (*X11, error) {
	if display == "" && os.Getenv("DISPLAY") == "" {
		return nil, fmt.Errorf("DISPLAY is not set")
	}
	conn, err := x11.Open(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &X11{conn: conn}, nil
}

func (x *X11) Name() string { return "x11" }

func (x *X11) Viewport(ctx context.Context) (geom.Size, error) {
	mon, err := x.conn.ActiveMonitor()
	if err != nil {
		return geom.Size{}, err
	}
	return mon.Bounds.Size(), nil
}

// Close disconnects from the X server.
func (x *X11) Close() {
	if x != nil && x.conn != nil {
		x.conn.Close()
	}
}
