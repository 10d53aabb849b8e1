package tiling

import (
	"fmt"
	"math"
	"strings"

	"github.com/1broseidon/deskwm/internal/geom"
)

// Mode selects how windows are arranged.
type Mode string

const (
	ModeGrid        Mode = "grid"
	ModeVertical    Mode = "vertical"
	ModeHorizontal  Mode = "horizontal"
	ModeMasterStack Mode = "master-stack"
)

// ParseMode accepts a mode name, case-insensitive. Empty means grid.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeGrid, nil
	case ModeGrid, ModeVertical, ModeHorizontal, ModeMasterStack:
		return m, nil
	default:
		return "", fmt.Errorf("unknown tiling mode %q (want grid, vertical, horizontal or master-stack)", s)
	}
}

// Layout configures Positions.
type Layout struct {
	Mode Mode
	// Gap is the space between cells and around the edge of the area.
	Gap float64
	// FlexibleLastRow lets a short last grid row stretch across the area.
	FlexibleLastRow bool
	// MasterPercent is the share of the width given to the first window in
	// master-stack mode.
	MasterPercent float64
}

// DefaultLayout is a gapless grid with a flexible last row.
func DefaultLayout() Layout {
	return Layout{Mode: ModeGrid, FlexibleLastRow: true, MasterPercent: 60}
}

// Grid determines the grid dimensions for n windows: the column count is the
// ceiling of the square root.
func Grid(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = int(math.Ceil(float64(n) / float64(cols)))
	return rows, cols
}

// Positions computes one frame per window inside area. Frames are in
// whole pixels. The first frame is the master pane in master-stack mode.
func Positions(n int, area geom.Rect, layout Layout) ([]geom.Rect, error) {
	if n <= 0 {
		return nil, nil
	}
	gap := layout.Gap
	if gap < 0 || !geom.Finite(gap) {
		return nil, fmt.Errorf("invalid gap %v", gap)
	}

	var rows, cols int
	flexible := layout.FlexibleLastRow
	switch layout.Mode {
	case ModeGrid, "":
		rows, cols = Grid(n)
	case ModeVertical:
		rows, cols = n, 1
		flexible = false
	case ModeHorizontal:
		rows, cols = 1, n
		flexible = false
	case ModeMasterStack:
		return masterStack(n, area, layout)
	default:
		return nil, fmt.Errorf("unsupported tiling mode: %q", layout.Mode)
	}

	slotW := math.Floor((area.Width - float64(cols+1)*gap) / float64(cols))
	slotH := math.Floor((area.Height - float64(rows+1)*gap) / float64(rows))
	if slotW <= 0 || slotH <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for layout: area=%vx%v rows=%d cols=%d gap=%v",
			area.Width, area.Height, rows, cols, gap,
		)
	}

	lastRow := rows - 1
	inLastRow := n - lastRow*cols
	lastW := slotW
	if flexible && inLastRow < cols {
		lastW = math.Floor((area.Width - float64(inLastRow+1)*gap) / float64(inLastRow))
	}

	out := make([]geom.Rect, n)
	for i := range out {
		row, col := i/cols, i%cols
		w := slotW
		if row == lastRow && flexible && inLastRow < cols {
			w = lastW
		}
		out[i] = geom.Rect{
			X:      area.X + gap + float64(col)*(w+gap),
			Y:      area.Y + gap + float64(row)*(slotH+gap),
			Width:  w,
			Height: slotH,
		}
	}
	return out, nil
}

// masterStack gives the first window the left MasterPercent of the area and
// stacks the rest in a single column on the right.
func masterStack(n int, area geom.Rect, layout Layout) ([]geom.Rect, error) {
	gap := layout.Gap
	pct := layout.MasterPercent
	if pct <= 0 || pct >= 100 {
		pct = 60
	}
	height := area.Height - 2*gap
	if n == 1 {
		if area.Width-2*gap <= 0 || height <= 0 {
			return nil, fmt.Errorf("insufficient space for master-stack layout: area=%vx%v gap=%v", area.Width, area.Height, gap)
		}
		return []geom.Rect{{X: area.X + gap, Y: area.Y + gap, Width: area.Width - 2*gap, Height: height}}, nil
	}

	masterW := math.Floor(area.Width*pct/100) - gap
	stackX := area.X + masterW + 2*gap
	stackW := area.Width - masterW - 3*gap
	stack := n - 1
	cellH := math.Floor((height - float64(stack-1)*gap) / float64(stack))
	if masterW <= 0 || stackW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for master-stack layout: area=%vx%v master=%v stack=%vx%v gap=%v",
			area.Width, area.Height, masterW, stackW, cellH, gap,
		)
	}

	out := make([]geom.Rect, n)
	out[0] = geom.Rect{X: area.X + gap, Y: area.Y + gap, Width: masterW, Height: height}
	for i := 0; i < stack; i++ {
		out[i+1] = geom.Rect{
			X:      stackX,
			Y:      area.Y + gap + float64(i)*(cellH+gap),
			Width:  stackW,
			Height: cellH,
		}
	}
	return out, nil
}
