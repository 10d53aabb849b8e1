// Package x11 reads monitor geometry from an X server.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Display is an open X connection.
type Display struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

// Open connects to name, or to $DISPLAY when name is empty.
func Open(name string) (*Display, error) {
	connect := xgbutil.NewConn
	if name != "" {
		connect = func() (*xgbutil.XUtil, error) { return xgbutil.NewConnDisplay(name) }
	}
	xu, err := connect()
	if err != nil {
		return nil, fmt.Errorf("connect to X display %q: %w", name, err)
	}
	return &Display{xu: xu, root: xu.RootWin()}, nil
}

func (d *Display) conn() *xgb.Conn { return d.xu.Conn() }

func (d *Display) Close() {
	d.conn().Close()
}
