package tui

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/platform"
)

// cellBox is an inclusive cell rectangle.
type cellBox struct {
	x1, y1, x2, y2 int
}

func (b cellBox) contains(col, row int) bool {
	return col >= b.x1 && col <= b.x2 && row >= b.y1 && row <= b.y2
}

// cellBoxOf maps a pixel frame onto the cells it covers.
func cellBoxOf(r geom.Rect) cellBox {
	return cellBox{
		x1: int(math.Floor(r.X / platform.CellWidth)),
		y1: int(math.Floor(r.Y / platform.CellHeight)),
		x2: int(math.Floor((r.X + r.Width - 1) / platform.CellWidth)),
		y2: int(math.Floor((r.Y + r.Height - 1) / platform.CellHeight)),
	}
}

// cellDelta converts a pointer movement in cells into pixels.
func cellDelta(fromCol, fromRow, toCol, toRow int) geom.Point {
	return geom.Point{
		X: float64((toCol - fromCol) * platform.CellWidth),
		Y: float64((toRow - fromRow) * platform.CellHeight),
	}
}

type zone int

const (
	zoneNone zone = iota
	zoneBody
	zoneTitle
	zoneBorder
	zoneClose
	zoneMinimize
	zoneMaximize
)

// Title bar buttons sit at fixed offsets from the right corner when the
// window is wide enough to show them.
const (
	minimizeOffset = 6
	maximizeOffset = 4
	closeOffset    = 2
	buttonsMinCols = 12
)

// hitZone classifies a press inside b. Borders resize in the direction of
// the edge; the top edge is the title bar, so north resizing happens only
// from the top corners.
func hitZone(b cellBox, col, row int) (zone, geometry.Direction) {
	if !b.contains(col, row) {
		return zoneNone, 0
	}
	left, right := col == b.x1, col == b.x2
	switch {
	case row == b.y1 && left:
		return zoneBorder, geometry.NorthWest
	case row == b.y1 && right:
		return zoneBorder, geometry.NorthEast
	case row == b.y1:
		if b.x2-b.x1 >= buttonsMinCols {
			switch col {
			case b.x2 - minimizeOffset:
				return zoneMinimize, 0
			case b.x2 - maximizeOffset:
				return zoneMaximize, 0
			case b.x2 - closeOffset:
				return zoneClose, 0
			}
		}
		return zoneTitle, 0
	case row == b.y2 && left:
		return zoneBorder, geometry.SouthWest
	case row == b.y2 && right:
		return zoneBorder, geometry.SouthEast
	case row == b.y2:
		return zoneBorder, geometry.South
	case left:
		return zoneBorder, geometry.West
	case right:
		return zoneBorder, geometry.East
	default:
		return zoneBody, 0
	}
}

// windowView is what drawWindow needs to know about one window.
type windowView struct {
	title  string
	route  string
	frame  geom.Rect
	active bool
}

func drawWindow(c *canvas, w windowView) {
	b := cellBoxOf(w.frame)
	frameSt, titleSt := styleFrame, styleTitle
	if w.active {
		frameSt, titleSt = styleFrameActive, styleTitleActive
	}

	c.fill(b.x1, b.y1+1, b.x2, b.y2, ' ', styleBody)
	for x := b.x1; x <= b.x2; x++ {
		c.set(x, b.y1, '─', titleSt)
		c.set(x, b.y2, '─', frameSt)
	}
	for y := b.y1; y <= b.y2; y++ {
		c.set(b.x1, y, '│', frameSt)
		c.set(b.x2, y, '│', frameSt)
	}
	c.set(b.x1, b.y1, '┌', titleSt)
	c.set(b.x2, b.y1, '┐', titleSt)
	c.set(b.x1, b.y2, '└', frameSt)
	c.set(b.x2, b.y2, '┘', frameSt)

	limit := b.x2
	if b.x2-b.x1 >= buttonsMinCols {
		limit = b.x2 - minimizeOffset - 1
		buttonSt := styleFrame
		if w.active {
			buttonSt = styleButton
		}
		c.set(b.x2-minimizeOffset, b.y1, '_', buttonSt)
		c.set(b.x2-maximizeOffset, b.y1, '□', buttonSt)
		c.set(b.x2-closeOffset, b.y1, '×', buttonSt)
	}
	c.text(b.x1+2, b.y1, " "+w.title+" ", titleSt, limit)

	if b.y2-b.y1 >= 2 && w.route != "" {
		c.text(b.x1+2, b.y1+1, w.route, styleBody, b.x2)
	}
	if b.y2-b.y1 >= 3 {
		size := fmt.Sprintf("%.0f×%.0f @ %.0f,%.0f", w.frame.Width, w.frame.Height, w.frame.X, w.frame.Y)
		c.text(b.x1+2, b.y1+2, size, styleBody, b.x2)
	}
}

type dockItem struct {
	appID   string
	label   string
	running bool
	x1, x2  int
}

// layoutDock centers the labels on a row of the given width.
func layoutDock(items []dockItem, width int) []dockItem {
	total := 0
	for i := range items {
		total += utf8.RuneCountInString(items[i].label)
	}
	x := (width - total) / 2
	if x < 0 {
		x = 0
	}
	for i := range items {
		n := utf8.RuneCountInString(items[i].label)
		items[i].x1 = x
		items[i].x2 = x + n - 1
		x += n
	}
	return items
}
