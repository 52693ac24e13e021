package animation

import (
	"context"
	"errors"
	"fmt"
	"github.com/clambin/keymatrix/internal/matrix"
	"github.com/clambin/keymatrix/internal/rgb"
	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"
	"iter"
	"time"
)

var (
	// ErrInvalidFPS is returned when an animation is started with a frame rate of zero or less
	ErrInvalidFPS = errors.New("frame rate must be positive")
	// ErrUnknownAnimation is returned when an animation ID is not in the catalog
	ErrUnknownAnimation = errors.New("unknown animation")
)

// Frame is one complete assignment of colors to the matrix, followed by Holds frame delays.
// Pixels normally holds rgb.Pixels words.
type Frame struct {
	Pixels []rgb.Word
	Holds  int
}

// Animation is a deterministic, finite sequence of Frames. Each call to Frames starts a new sequence.
type Animation struct {
	ID     ID
	Name   string
	frames func() iter.Seq[Frame]
}

// Frames returns the frames of the animation
func (a Animation) Frames() iter.Seq[Frame] {
	return a.frames()
}

// Clock paces the frames of an animation
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock sleeps in wall clock time
type RealClock struct{}

func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Engine plays animations on a Sink. Playing an animation blocks the caller until the last frame
// has been shown.
type Engine struct {
	sink  matrix.Sink
	clock Clock
}

// New creates an Engine
func New(sink matrix.Sink, clock Clock) *Engine {
	return &Engine{sink: sink, clock: clock}
}

// Run plays the animation with the specified ID
func (e *Engine) Run(ctx context.Context, id ID, fps int) error {
	a, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownAnimation, id)
	}
	return e.Play(ctx, a, fps)
}

// Play shows all frames of the animation, waiting 1000/fps milliseconds after each frame
func (e *Engine) Play(ctx context.Context, a Animation, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("%s: %w (got %d)", a.Name, ErrInvalidFPS, fps)
	}
	delay := time.Duration(1000/fps) * time.Millisecond

	log.WithFields(log.Fields{"animation": a.Name, "fps": fps}).Debug("animation started")
	var count int
	for frame := range a.Frames() {
		if err := e.show(frame.Pixels); err != nil {
			return fmt.Errorf("%s: frame %d: %w", a.Name, count, err)
		}
		for range frame.Holds {
			if err := e.clock.Sleep(ctx, delay); err != nil {
				return err
			}
		}
		count++
	}
	log.WithFields(log.Fields{"animation": a.Name, "frames": count}).Debug("animation done")
	return nil
}

// Fill sets all pixels to the same color
func (e *Engine) Fill(c colorful.Color) error {
	return e.show(solid(rgb.EncodeColor(c)))
}

func (e *Engine) show(pixels []rgb.Word) error {
	for _, w := range pixels {
		if err := e.sink.Put(w); err != nil {
			return err
		}
	}
	return e.sink.Latch()
}

func solid(w rgb.Word) []rgb.Word {
	pixels := make([]rgb.Word, rgb.Pixels)
	for i := range pixels {
		pixels[i] = w
	}
	return pixels
}
