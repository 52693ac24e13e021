package matrix

import (
	"fmt"
	"github.com/clambin/keymatrix/internal/rgb"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/nrzled"
)

// WS281x shows frames on a WS2811/WS2812 strip attached to an SPI port
type WS281x struct {
	dev *nrzled.Dev
	buf []byte
}

var _ Display = &WS281x{}

// NewWS281x creates a WS281x display on the provided SPI port
func NewWS281x(port spi.Port) (*WS281x, error) {
	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: rgb.Pixels,
		Channels:  3,
		Freq:      2500 * physic.KiloHertz,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &WS281x{dev: dev, buf: make([]byte, 3*rgb.Pixels)}, nil
}

// Show writes the frame to the strip. nrzled takes RGB triplets and reorders them for the wire.
func (w *WS281x) Show(frame []rgb.Word) error {
	for i, word := range frame {
		r, g, b := word.Channels()
		w.buf[3*i], w.buf[3*i+1], w.buf[3*i+2] = r, g, b
	}
	_, err := w.dev.Write(w.buf)
	return err
}

// Close switches off all LEDs
func (w *WS281x) Close() error {
	return w.dev.Halt()
}
