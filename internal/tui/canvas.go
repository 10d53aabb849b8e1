package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellStyle indexes the palette used when a canvas is flattened to text.
type cellStyle int

const (
	styleDesktop cellStyle = iota
	styleFrame
	styleFrameActive
	styleTitle
	styleTitleActive
	styleBody
	styleButton
	styleMenu
	styleDock
	styleDockRunning
	styleCount
)

var palette = [styleCount]lipgloss.Style{
	styleDesktop:     lipgloss.NewStyle().Background(lipgloss.Color("24")),
	styleFrame:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236")),
	styleFrameActive: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")),
	styleTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
	styleTitleActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")),
	styleBody:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235")),
	styleButton:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("62")),
	styleMenu:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("235")),
	styleDock:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("237")),
	styleDockRunning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")).Background(lipgloss.Color("237")),
}

// canvas is a grid of runes with one style per cell.
type canvas struct {
	width, height int
	runes         [][]rune
	styles        [][]cellStyle
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.runes = make([][]rune, height)
	c.styles = make([][]cellStyle, height)
	for y := range c.runes {
		c.runes[y] = make([]rune, width)
		c.styles[y] = make([]cellStyle, width)
		for x := range c.runes[y] {
			c.runes[y][x] = ' '
		}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, st cellStyle) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.runes[y][x] = r
	c.styles[y][x] = st
}

// text writes s from (x, y), stopping before maxX.
func (c *canvas) text(x, y int, s string, st cellStyle, maxX int) {
	for _, r := range s {
		if x >= maxX {
			return
		}
		c.set(x, y, r, st)
		x++
	}
}

func (c *canvas) fill(x1, y1, x2, y2 int, r rune, st cellStyle) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c.set(x, y, r, st)
		}
	}
}

// String renders the canvas, one lipgloss call per run of equal style.
func (c *canvas) String() string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var sb strings.Builder
		start := 0
		for x := 1; x <= c.width; x++ {
			if x < c.width && c.styles[y][x] == c.styles[y][start] {
				continue
			}
			sb.WriteString(palette[c.styles[y][start]].Render(string(c.runes[y][start:x])))
			start = x
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
