package rgb

import (
	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"
	"math"
)

// Geometry of the LED matrix. Pixels are addressed in row-major raster order.
const (
	Width  = 5
	Height = 5
	Pixels = Width * Height
)

// Index returns the raster index of the pixel at (row, col)
func Index(row, col int) int {
	return row*Width + col
}

// Word is a color packed the way the LED strip expects it: green in bits 31-24, red in bits 23-16,
// blue in bits 15-8. The low byte is always zero.
type Word uint32

// Off is a dark pixel
const Off Word = 0

// Encode packs three channel intensities into a Word. Each intensity is clamped to [0,1], scaled by 255
// and truncated.
func Encode(red, green, blue float64) Word {
	return EncodeColor(colorful.Color{R: red, G: green, B: blue})
}

// EncodeColor packs a color into a Word
func EncodeColor(c colorful.Color) Word {
	if clamped := clamp(c); clamped != c {
		log.WithFields(log.Fields{
			"r": c.R,
			"g": c.G,
			"b": c.B,
		}).Debug("color intensity out of range")
		c = clamped
	}
	r, g, b := scale(c.R), scale(c.G), scale(c.B)
	return Word(uint32(g)<<24 | uint32(r)<<16 | uint32(b)<<8)
}

// Channels returns the 8-bit red, green and blue values of the Word
func (w Word) Channels() (r, g, b uint8) {
	return uint8(w >> 16), uint8(w >> 24), uint8(w >> 8)
}

// Color returns the Word as a color
func (w Word) Color() colorful.Color {
	r, g, b := w.Channels()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func clamp(c colorful.Color) colorful.Color {
	for _, v := range []*float64{&c.R, &c.G, &c.B} {
		if math.IsNaN(*v) {
			*v = 0
		}
	}
	return c.Clamped()
}

// scale truncates, so 0.5 becomes 127
func scale(v float64) uint8 {
	return uint8(v * 255)
}
