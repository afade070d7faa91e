// Package render rasterizes placement previews: the filled outline, the
// placed module footprints, and their center marks, composited into an RGBA
// image for debugging and the CLI's preview output. The placement engine
// itself never draws; this package is strictly a consumer of its results.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/signkit/ledlayout"
)

// Options controls preview rendering.
type Options struct {
	// Scale multiplies outline units into pixels. Default 1.
	Scale float64

	// Margin is the border around the outline, in outline units. Default 8.
	Margin float64

	// Background, Fill, Module and Center are the layer colors. Zero values
	// pick a readable default palette.
	Background color.Color
	Fill       color.Color
	Module     color.Color
	Center     color.Color
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Margin < 0 {
		o.Margin = 0
	} else if o.Margin == 0 {
		o.Margin = 8
	}
	if o.Background == nil {
		o.Background = color.RGBA{R: 0x12, G: 0x14, B: 0x18, A: 0xff}
	}
	if o.Fill == nil {
		o.Fill = color.RGBA{R: 0x2e, G: 0x3a, B: 0x52, A: 0xff}
	}
	if o.Module == nil {
		o.Module = color.RGBA{R: 0xff, G: 0xc8, B: 0x3d, A: 0xff}
	}
	if o.Center == nil {
		o.Center = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return o
}

// Preview renders the outline and its placed modules. The module footprint
// size comes from cfg (the same config used for placement), so the preview
// shows the geometry the capsule tests actually checked.
func Preview(o *ledlayout.Outline, positions []ledlayout.LEDPosition, cfg ledlayout.PlacementConfig, opts Options) *image.RGBA {
	opts = opts.withDefaults()

	bounds := o.BoundingBox().Expand(opts.Margin)
	w := int(math.Ceil(bounds.Width() * opts.Scale))
	h := int(math.Ceil(bounds.Height() * opts.Scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	toPx := func(p ledlayout.Point) (float32, float32) {
		return float32((p.X - bounds.Min.X) * opts.Scale), float32((p.Y - bounds.Min.Y) * opts.Scale)
	}

	// Outline fill. Holes wind identically under even-odd, but the
	// rasterizer accumulates nonzero coverage; reversing hole contours is
	// not worth it for a debug preview, so nested contours may fill solid.
	fillContours(img, o, toPx, opts.Fill)

	// Module footprints as rotated rectangles, then center marks.
	halfL := cfg.Module.LengthInches * cfg.PixelsPerInch / 2 * opts.Scale
	halfH := cfg.Module.HeightInches * cfg.PixelsPerInch / 2 * opts.Scale
	for _, pos := range positions {
		cx, cy := toPx(ledlayout.Pt(pos.X, pos.Y))
		drawRotatedRect(img, cx, cy, float32(halfL), float32(halfH), pos.Rotation, opts.Module)
		drawDot(img, cx, cy, float32(math.Max(1.5, 2*opts.Scale)), opts.Center)
	}
	return img
}

// WritePNG encodes the image as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// fillContours rasterizes every outline contour into img with the given
// color.
func fillContours(img *image.RGBA, o *ledlayout.Outline, toPx func(ledlayout.Point) (float32, float32), c color.Color) {
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for i := 0; i < o.ContourCount(); i++ {
		pts := o.Contour(i)
		if len(pts) == 0 {
			continue
		}
		x, y := toPx(pts[0])
		z.MoveTo(x, y)
		for _, p := range pts[1:] {
			x, y = toPx(p)
			z.LineTo(x, y)
		}
		z.ClosePath()
	}
	z.Draw(img, b, image.NewUniform(c), image.Point{})
}

// drawRotatedRect fills a rectangle of the given half-extents centered at
// (cx, cy) and rotated by rotation degrees.
func drawRotatedRect(img *image.RGBA, cx, cy, halfL, halfH float32, rotation float64, c color.Color) {
	sin, cos := math.Sincos(rotation * math.Pi / 180)
	s, co := float32(sin), float32(cos)

	corner := func(dx, dy float32) (float32, float32) {
		return cx + dx*co - dy*s, cy + dx*s + dy*co
	}

	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	x, y := corner(-halfL, -halfH)
	z.MoveTo(x, y)
	for _, d := range [][2]float32{{halfL, -halfH}, {halfL, halfH}, {-halfL, halfH}} {
		x, y = corner(d[0], d[1])
		z.LineTo(x, y)
	}
	z.ClosePath()
	z.Draw(img, b, image.NewUniform(c), image.Point{})
}

// drawDot fills a small diamond marker at (cx, cy).
func drawDot(img *image.RGBA, cx, cy, r float32, c color.Color) {
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(cx-r, cy)
	z.LineTo(cx, cy-r)
	z.LineTo(cx+r, cy)
	z.LineTo(cx, cy+r)
	z.ClosePath()
	z.Draw(img, b, image.NewUniform(c), image.Point{})
}
