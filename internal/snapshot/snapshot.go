// Package snapshot renders a desktop layout to a raster image.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/geom"
)

// TitleBarHeight is the height of the drawn title bar in pixels.
const TitleBarHeight = 22

var (
	colorDesktop     = color.RGBA{R: 0x1e, G: 0x3a, B: 0x5f, A: 0xff}
	colorStrip       = color.RGBA{R: 0x26, G: 0x26, B: 0x26, A: 0xff}
	colorBody        = color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	colorBorder      = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	colorTitle       = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	colorTitleActive = color.RGBA{R: 0x5b, G: 0x5f, B: 0xc7, A: 0xff}
	colorText        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Options controls rendering.
type Options struct {
	// Scale resizes the output; 0 means 1.
	Scale float64
}

// Render draws the strips and every non-minimized window, bottom to top.
// windows must already be in stacking order.
func Render(viewport geom.Size, metrics geom.Metrics, windows []desktop.WindowInfo, opts Options) (image.Image, error) {
	if !viewport.Finite() || !viewport.Positive() {
		return nil, fmt.Errorf("invalid viewport %v", viewport)
	}
	w, h := int(math.Round(viewport.Width)), int(math.Round(viewport.Height))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	fill(img, img.Bounds(), colorDesktop)
	fill(img, image.Rect(0, 0, w, int(metrics.TopStrip)), colorStrip)
	fill(img, image.Rect(0, h-int(metrics.BottomStrip), w, h), colorStrip)

	for _, win := range windows {
		if win.Status == "minimized" || win.Status == "closed" {
			continue
		}
		drawWindow(img, win)
	}

	scale := opts.Scale
	if scale == 0 || scale == 1 {
		return img, nil
	}
	if scale < 0 || !geom.Finite(scale) {
		return nil, fmt.Errorf("invalid scale %v", scale)
	}
	sw, sh := int(math.Max(1, math.Round(float64(w)*scale))), int(math.Max(1, math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// WritePNG encodes img as PNG.
func WritePNG(out io.Writer, img image.Image) error {
	return png.Encode(out, img)
}

func drawWindow(img *image.RGBA, win desktop.WindowInfo) {
	f := win.Frame
	r := image.Rect(
		int(math.Round(f.X)), int(math.Round(f.Y)),
		int(math.Round(f.Right())), int(math.Round(f.Bottom())),
	)
	fill(img, r, colorBorder)
	fill(img, r.Inset(1), colorBody)

	bar := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+TitleBarHeight)
	barColor := colorTitle
	if win.Active {
		barColor = colorTitleActive
	}
	fill(img, bar.Intersect(r), barColor)

	title := win.Title
	if title == "" {
		title = win.ID
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorText),
		Face: face,
		Dot:  fixed.P(bar.Min.X+8, bar.Min.Y+(TitleBarHeight+face.Ascent)/2),
	}
	// Clip to the bar so long titles do not spill past the frame.
	if limit := (bar.Dx() - 16) / face.Advance; limit > 0 {
		if len(title) > limit {
			title = title[:limit]
		}
		d.DrawString(title)
	}
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}
