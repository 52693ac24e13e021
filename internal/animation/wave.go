package animation

import (
	"github.com/clambin/keymatrix/internal/rgb"
	"iter"
	"math"
)

const (
	fillFrames = 5

	channelWaveFrames = 50
	channelWaveK      = 0.3
	// frames per channel before the wave moves on to the next one
	channelWavePeriod = 10

	hueWaveFrames = 100
	hueWaveStep   = 2 * math.Pi / rgb.Pixels
)

// alternatingFill shows the whole matrix in red on even frames and in green on odd frames
func alternatingFill() iter.Seq[Frame] {
	red, green := rgb.Encode(0.5, 0, 0), rgb.Encode(0, 0.5, 0)
	return func(yield func(Frame) bool) {
		for f := range fillFrames {
			w := red
			if f%2 == 1 {
				w = green
			}
			if !yield(Frame{Pixels: solid(w), Holds: 1}) {
				return
			}
		}
	}
}

// channelWave runs a sine wave over a single channel: blue, then green, then red, ten frames each
func channelWave() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for f := range channelWaveFrames {
			pixels := make([]rgb.Word, rgb.Pixels)
			for i := range pixels {
				v := oscillate(float64(f+i) * channelWaveK)
				switch (f / channelWavePeriod) % 3 {
				case 0:
					pixels[i] = rgb.Encode(0, 0, v)
				case 1:
					pixels[i] = rgb.Encode(0, v, 0)
				default:
					pixels[i] = rgb.Encode(v, 0, 0)
				}
			}
			if !yield(Frame{Pixels: pixels, Holds: 1}) {
				return
			}
		}
	}
}

// hueWave runs three sine waves, 120 degrees apart, over the red, green and blue channels
func hueWave() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for f := range hueWaveFrames {
			pixels := make([]rgb.Word, rgb.Pixels)
			for i := range pixels {
				phase := float64(f)*hueWaveStep + float64(i)*hueWaveStep
				pixels[i] = rgb.Encode(
					oscillate(phase),
					oscillate(phase+2*math.Pi/3),
					oscillate(phase+4*math.Pi/3),
				)
			}
			if !yield(Frame{Pixels: pixels, Holds: 1}) {
				return
			}
		}
	}
}

// oscillate maps a phase onto [0,1]
func oscillate(phase float64) float64 {
	return (math.Sin(phase) + 1) / 2
}
