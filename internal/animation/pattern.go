package animation

import (
	"github.com/clambin/keymatrix/internal/rgb"
	"github.com/lucasb-eyer/go-colorful"
	"iter"
)

// Mask is a set of pixel indices, one bit per pixel
type Mask uint32

// MaskOf returns the Mask holding the specified pixel indices
func MaskOf(indices ...int) Mask {
	var m Mask
	for _, i := range indices {
		m |= 1 << i
	}
	return m
}

// Has reports whether the pixel index is part of the Mask
func (m Mask) Has(i int) bool {
	return m&(1<<i) != 0
}

// Glyphs. These are hand-drawn on the 5x5 grid.
var (
	GlyphD = MaskOf(2, 3, 4, 5, 8, 10, 14, 15, 18, 22, 23, 24)
	GlyphA = MaskOf(0, 4, 5, 6, 7, 8, 9, 11, 13, 16, 18, 22)
	GlyphV = MaskOf(2, 6, 8, 11, 13, 15, 19, 20, 24)
	GlyphI = MaskOf(2, 7, 12, 17, 22)

	GlyphHeart   = MaskOf(1, 3, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 16, 17, 18, 22)
	GlyphSmiley  = MaskOf(6, 8, 15, 19, 21, 22, 23)
	GlyphCross   = MaskOf(0, 4, 6, 8, 12, 16, 18, 20, 24)
	GlyphSquare  = MaskOf(0, 1, 2, 3, 4, 5, 9, 10, 14, 15, 19, 20, 21, 22, 23, 24)
	GlyphDiamond = MaskOf(2, 6, 8, 10, 14, 16, 18, 22)
)

// Column returns the Mask of a vertical line
func Column(col int) Mask {
	var m Mask
	for row := range rgb.Height {
		m |= 1 << rgb.Index(row, col)
	}
	return m
}

// patternFrame lights the pixels of a Mask in one color. All other pixels are black.
type patternFrame struct {
	mask  Mask
	color colorful.Color
	// number of pixels written. zero means all of them.
	pixels int
}

func (p patternFrame) render() []rgb.Word {
	count := p.pixels
	if count == 0 {
		count = rgb.Pixels
	}
	on, off := rgb.EncodeColor(p.color), rgb.Encode(0, 0, 0)
	pixels := make([]rgb.Word, count)
	for i := range pixels {
		pixels[i] = off
		if p.mask.Has(i) {
			pixels[i] = on
		}
	}
	return pixels
}

var letters = []patternFrame{
	{mask: GlyphD, color: colorful.Color{B: 0.5}},
	{mask: GlyphA, color: colorful.Color{R: 0.5, G: 0.5}},
	{mask: GlyphV, color: colorful.Color{R: 0.5, B: 0.5}},
	{mask: GlyphI, color: colorful.Color{G: 0.5}},
	{mask: GlyphD, color: colorful.Color{R: 0.5}},
}

var palette = []patternFrame{
	{mask: GlyphHeart, color: colorful.Color{R: 0.5}},
	{mask: GlyphSmiley, color: colorful.Color{R: 0.5, G: 0.5}},
	{mask: GlyphCross, color: colorful.Color{G: 0.5, B: 0.5}},
	{mask: GlyphSquare, color: colorful.Color{R: 0.5, B: 0.5}},
	{mask: GlyphDiamond, color: colorful.Color{R: 0.3, G: 0.3, B: 0.3}},
}

// The last frame only writes the first 24 pixels, so the bottom pixel of its line keeps the value of
// the previous frame.
// TODO: confirm with the board owners whether the short frame is intended.
var verticalLines = []patternFrame{
	{mask: Column(0), color: colorful.Color{R: 0.5}},
	{mask: Column(1), color: colorful.Color{G: 0.5}},
	{mask: Column(2), color: colorful.Color{B: 0.5}},
	{mask: Column(3), color: colorful.Color{R: 0.5, G: 0.5}},
	{mask: Column(4), color: colorful.Color{G: 0.5, B: 0.5}, pixels: rgb.Pixels - 1},
}

func sequence(frames []patternFrame) func() iter.Seq[Frame] {
	return func() iter.Seq[Frame] {
		return func(yield func(Frame) bool) {
			for _, p := range frames {
				if !yield(Frame{Pixels: p.render(), Holds: 1}) {
					return
				}
			}
		}
	}
}
