package font

import (
	"github.com/signkit/ledlayout"
)

// CharShape is one laid-out character: its rune, its outline path positioned
// on the line, and whether it came from the font or the block-letter
// fallback.
type CharShape struct {
	Rune     rune
	Path     *ledlayout.Path
	Fallback bool
}

// Layout produces positioned outline paths for each non-whitespace character
// of text at sizePx, advancing the pen by the font's metrics plus
// letterSpacing pixels. The whole line is translated so its bounding box
// starts at the origin.
func (p *Provider) Layout(text string, sizePx, letterSpacing float64) []CharShape {
	var shapes []CharShape
	penX := 0.0
	for _, r := range text {
		path, ok := p.GlyphPath(r, sizePx)
		fallback := false
		if !ok {
			ledlayout.Logger().Debug("font missing glyph, using block fallback", "rune", string(r))
			path = BlockLetter(sizePx)
			fallback = true
		}
		if !path.IsEmpty() {
			shapes = append(shapes, CharShape{
				Rune:     r,
				Path:     path.Translate(penX, 0),
				Fallback: fallback,
			})
		}
		penX += p.Advance(r, sizePx) + letterSpacing
	}
	return normalizeOrigin(shapes)
}

// normalizeOrigin translates every shape so the combined flattened bounding
// box starts at (0, 0).
func normalizeOrigin(shapes []CharShape) []CharShape {
	if len(shapes) == 0 {
		return shapes
	}
	bounds := ledlayout.NewOutline(shapes[0].Path, 0).BoundingBox()
	for _, s := range shapes[1:] {
		bounds = bounds.Union(ledlayout.NewOutline(s.Path, 0).BoundingBox())
	}
	for i := range shapes {
		shapes[i].Path = shapes[i].Path.Translate(-bounds.Min.X, -bounds.Min.Y)
	}
	return shapes
}

// BlockLetter returns the fallback shape for characters the font cannot
// render: a filled rectangular slab with a punched center, sized to a typical
// letter body. The hole keeps the stroke width realistic so placement still
// finds a sensible centerline.
func BlockLetter(sizePx float64) *ledlayout.Path {
	w := sizePx * 0.6
	h := sizePx * 0.7
	stroke := sizePx * 0.14

	p := ledlayout.NewPath()
	p.Rectangle(0, -h, w, h)
	// Inner hole wound the same way; even-odd containment makes it a void.
	p.Rectangle(stroke, -h+stroke, w-2*stroke, h-2*stroke)
	return p
}
