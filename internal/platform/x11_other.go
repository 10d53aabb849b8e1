//go:build !linux

package platform

import (
	"context"
	"errors"

	"github.com/1broseidon/deskwm/internal/geom"
)

// X11 is unavailable on this platform.
type X11 struct{}

func NewX11(display string) (*X11, error) {
	return nil, errors.New("x11 viewport source is only supported on linux")
}

func (x *X11) Name() string { return "x11" }

func (x *X11) Viewport(ctx context.Context) (geom.Size, error) {
	return geom.Size{}, errors.New("x11 viewport source is only supported on linux")
}

func (x *X11) Close() {}
