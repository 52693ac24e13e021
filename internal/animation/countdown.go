package animation

import (
	"github.com/clambin/keymatrix/internal/rgb"
	"github.com/lucasb-eyer/go-colorful"
	"iter"
)

// Digit is drawn on the matrix one pixel at a time, in the order of Pixels
type Digit struct {
	Value  int
	Pixels []int
	Color  colorful.Color
}

// Digits holds the digits of the countdown, in the order they are shown
var Digits = []Digit{
	{Value: 9, Pixels: []int{13, 12, 11, 6, 1, 2, 3, 8, 18, 23, 22, 21}, Color: colorful.Color{R: 0.5}},
	{Value: 8, Pixels: []int{12, 11, 6, 1, 2, 3, 8, 13, 18, 23, 22, 21, 16}, Color: colorful.Color{R: 0.5, G: 0.25}},
	{Value: 7, Pixels: []int{1, 2, 3, 8, 13, 18, 23}, Color: colorful.Color{R: 0.5, G: 0.5}},
	{Value: 6, Pixels: []int{3, 2, 1, 6, 11, 16, 21, 22, 23, 18, 13, 12}, Color: colorful.Color{G: 0.5}},
	{Value: 5, Pixels: []int{3, 2, 1, 6, 11, 12, 13, 18, 23, 22, 21}, Color: colorful.Color{G: 0.5, B: 0.5}},
	{Value: 4, Pixels: []int{1, 6, 11, 12, 13, 3, 8, 18, 23}, Color: colorful.Color{B: 0.5}},
	{Value: 3, Pixels: []int{1, 2, 3, 8, 11, 12, 13, 18, 21, 22, 23}, Color: colorful.Color{R: 0.25, B: 0.5}},
	{Value: 2, Pixels: []int{1, 2, 3, 8, 13, 12, 11, 16, 21, 22, 23}, Color: colorful.Color{R: 0.5, B: 0.5}},
	{Value: 1, Pixels: []int{2, 7, 12, 17, 22}, Color: colorful.Color{R: 0.5, G: 0.5, B: 0.5}},
	{Value: 0, Pixels: []int{1, 2, 3, 8, 13, 18, 23, 22, 21, 16, 11, 6}, Color: colorful.Color{R: 0.5, G: 0.1, B: 0.1}},
}

// countdown writes each digit in, one pixel per frame. Pixels that are not drawn yet are switched off.
// The frame that completes a digit is held for an extra delay.
func countdown() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for _, d := range Digits {
			for k := 1; k <= len(d.Pixels); k++ {
				frame := Frame{Pixels: d.reveal(k), Holds: 1}
				if k == len(d.Pixels) {
					frame.Holds = 2
				}
				if !yield(frame) {
					return
				}
			}
		}
	}
}

// reveal returns the frame showing the first k pixels of the digit
func (d Digit) reveal(k int) []rgb.Word {
	pixels := make([]rgb.Word, rgb.Pixels)
	on := rgb.EncodeColor(d.Color)
	for _, i := range d.Pixels[:k] {
		pixels[i] = on
	}
	return pixels
}
