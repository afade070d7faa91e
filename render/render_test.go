package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/signkit/ledlayout"
)

func barOutline() *ledlayout.Outline {
	p := ledlayout.NewPath()
	p.Rectangle(0, 0, 100, 40)
	return ledlayout.NewOutline(p, 0)
}

func TestPreview(t *testing.T) {
	o := barOutline()
	cfg := ledlayout.DefaultPlacementConfig(ledlayout.ModuleInfo{})
	positions := []ledlayout.LEDPosition{
		{X: 30, Y: 20, Rotation: 0},
		{X: 70, Y: 20, Rotation: 45},
	}

	img := Preview(o, positions, cfg, Options{})
	b := img.Bounds()

	// 100x40 outline plus the default 8-unit margin on every side.
	if b.Dx() != 116 || b.Dy() != 56 {
		t.Fatalf("image size = %dx%d, want 116x56", b.Dx(), b.Dy())
	}

	opts := Options{}.withDefaults()
	if got := img.At(0, 0); !sameColor(got, opts.Background) {
		t.Errorf("corner pixel = %v, want background", got)
	}
	// Interior of the shape away from any module is filled.
	if got := img.At(16, 28); !sameColor(got, opts.Fill) {
		t.Errorf("fill pixel = %v, want fill color", got)
	}
	// A module footprint covers its center.
	if got := img.At(38, 28); !sameColor(got, opts.Module) && !sameColor(got, opts.Center) {
		t.Errorf("module pixel = %v, want module or center color", got)
	}
}

func TestPreviewScale(t *testing.T) {
	img := Preview(barOutline(), nil, ledlayout.DefaultPlacementConfig(ledlayout.ModuleInfo{}), Options{Scale: 2})
	b := img.Bounds()
	if b.Dx() != 232 || b.Dy() != 112 {
		t.Errorf("scaled image size = %dx%d, want 232x112", b.Dx(), b.Dy())
	}
}

func TestPreviewEmptyOutline(t *testing.T) {
	o := ledlayout.NewOutline(ledlayout.NewPath(), 0)
	img := Preview(o, nil, ledlayout.DefaultPlacementConfig(ledlayout.ModuleInfo{}), Options{})
	if img.Bounds().Dx() < 1 || img.Bounds().Dy() < 1 {
		t.Errorf("empty outline produced a zero-size image: %v", img.Bounds())
	}
}

func TestWritePNG(t *testing.T) {
	img := Preview(barOutline(), nil, ledlayout.DefaultPlacementConfig(ledlayout.ModuleInfo{}), Options{})

	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("encoded output does not decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("round-trip bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

// sameColor compares colors in RGBA space with a small tolerance for
// rasterizer edge coverage.
func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	const tol = 0x300
	diff := func(x, y uint32) uint32 {
		if x > y {
			return x - y
		}
		return y - x
	}
	return diff(r1, r2) < tol && diff(g1, g2) < tol && diff(b1, b2) < tol && diff(a1, a2) < tol
}
