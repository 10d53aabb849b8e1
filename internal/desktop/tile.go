package desktop

import (
	"fmt"

	"github.com/1broseidon/deskwm/internal/tiling"
	"github.com/1broseidon/deskwm/internal/wm"
)

// Tile arranges the visible windows over the usable area. The active window
// takes the first cell, the rest follow from top of the stack down. Maximized
// windows are restored first. Cells smaller than an application's minimum
// size leave the window at its minimum.
func (c *Controller) Tile(layout tiling.Layout) ([]wm.Window, error) {
	c.mu.Lock()
	busy := len(c.drags) + len(c.resizes)
	c.mu.Unlock()
	if busy > 0 {
		return nil, fmt.Errorf("%w: cannot tile during a drag or resize", ErrInteractionBusy)
	}

	st := c.session.State()
	visible := st.VisibleWindows()
	if len(visible) == 0 {
		return nil, nil
	}
	cells, err := tiling.Positions(len(visible), c.session.Bounds().Usable(), layout)
	if err != nil {
		return nil, err
	}
	active, hasActive := st.ActiveWindow()

	restored := false
	for _, w := range visible {
		if w.Maximized {
			c.session.Dispatch(wm.Restore{ID: w.ID})
			restored = true
		}
	}
	// Restore raises, so put the captured stacking order back.
	if restored {
		for _, w := range visible {
			c.session.Dispatch(wm.Focus{ID: w.ID})
		}
	}

	next := st
	for i := range visible {
		w := visible[len(visible)-1-i]
		next = c.session.Dispatch(wm.SetFrame{ID: w.ID, Frame: cells[i]})
	}
	if hasActive {
		next = c.session.Dispatch(wm.Focus{ID: active.ID})
	}

	out := make([]wm.Window, 0, len(visible))
	for i := range visible {
		if w, ok := next.Window(visible[len(visible)-1-i].ID); ok {
			out = append(out, w)
		}
	}

	c.logger.Info("windows tiled", "mode", layout.Mode, "count", len(out))
	return out, nil
}
