// Package font turns font glyphs into placement outlines.
//
// It is the outline provider for the placement engine: given TTF/OTF data and
// a text string, it produces one closed vector path per character, flattened
// by the caller into ledlayout Outlines. Characters the font cannot render
// fall back to synthetic block-letter shapes so a layout never silently loses
// a letter.
//
// Coordinates are y-down with the glyph baseline at y=0 (ascenders extend
// into negative y); Layout normalizes a whole line so its bounding box starts
// at the origin.
package font

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/signkit/ledlayout"
)

// Provider maps runes to glyph outline paths for one parsed font.
//
// A Provider is cheap to keep around; the underlying font tables are parsed
// once. It is not safe for concurrent use (the glyph accessor caches
// internally), so share one per goroutine or guard it.
type Provider struct {
	face *font.Face
	upem float64
}

// Parse parses TTF or OTF font data.
func Parse(data []byte) (*Provider, error) {
	f, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: parse: %w", err)
	}
	return &Provider{
		face: f,
		upem: float64(f.Upem()),
	}, nil
}

// HasGlyph reports whether the font renders r with a real outline.
func (p *Provider) HasGlyph(r rune) bool {
	gid, ok := p.face.NominalGlyph(r)
	if !ok {
		return false
	}
	outline, ok := p.face.GlyphData(gid).(font.GlyphOutline)
	return ok && len(outline.Segments) > 0
}

// GlyphPath returns the closed outline path of r scaled to sizePx (pixels per
// em), or ok=false when the font has no outline for it. Whitespace returns
// an empty path with ok=true: it renders as nothing by design.
func (p *Provider) GlyphPath(r rune, sizePx float64) (*ledlayout.Path, bool) {
	if r == ' ' || r == '\t' {
		return ledlayout.NewPath(), true
	}
	gid, ok := p.face.NominalGlyph(r)
	if !ok {
		return nil, false
	}
	outline, ok := p.face.GlyphData(gid).(font.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return nil, false
	}

	scale := sizePx / p.upem
	path := ledlayout.NewPath()
	started := false
	for _, seg := range outline.Segments {
		// Font units are y-up; flip into screen coordinates.
		sx := func(i int) (float64, float64) {
			return float64(seg.Args[i].X) * scale, -float64(seg.Args[i].Y) * scale
		}
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if started {
				path.Close()
			}
			x, y := sx(0)
			path.MoveTo(x, y)
			started = true
		case ot.SegmentOpLineTo:
			x, y := sx(0)
			path.LineTo(x, y)
		case ot.SegmentOpQuadTo:
			cx, cy := sx(0)
			x, y := sx(1)
			path.QuadraticTo(cx, cy, x, y)
		case ot.SegmentOpCubeTo:
			c1x, c1y := sx(0)
			c2x, c2y := sx(1)
			x, y := sx(2)
			path.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if started {
		path.Close()
	}
	return path, true
}

// Advance returns the horizontal advance of r at sizePx, falling back to half
// an em for unknown runes (matching the block-letter fallback width).
func (p *Provider) Advance(r rune, sizePx float64) float64 {
	gid, ok := p.face.NominalGlyph(r)
	if !ok {
		return sizePx * 0.5
	}
	return float64(p.face.HorizontalAdvance(gid)) / p.upem * sizePx
}
