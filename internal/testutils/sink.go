package testutils

import (
	"context"
	"errors"
	"github.com/clambin/keymatrix/internal/rgb"
	"sync"
	"time"
)

// ErrSinkFailed is returned by a Recorder once FailAfter words have been written
var ErrSinkFailed = errors.New("sink failed")

// Event is a single call made to a Recorder or a Clock
type Event struct {
	Frame []rgb.Word
	Sleep time.Duration
}

// Recorder is a matrix.Sink and an animation.Clock that records every latched frame and every sleep,
// in the order they happened
type Recorder struct {
	Events  []Event
	pending []rgb.Word
	// if set, Put fails once this many words have been written
	FailAfter int
	puts      int
	lock      sync.Mutex
}

func (r *Recorder) Put(word rgb.Word) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.puts++
	if r.FailAfter > 0 && r.puts > r.FailAfter {
		return ErrSinkFailed
	}
	r.pending = append(r.pending, word)
	return nil
}

func (r *Recorder) Latch() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.pending == nil {
		r.pending = []rgb.Word{}
	}
	r.Events = append(r.Events, Event{Frame: r.pending})
	r.pending = nil
	return nil
}

func (r *Recorder) Sleep(ctx context.Context, d time.Duration) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Events = append(r.Events, Event{Sleep: d})
	return ctx.Err()
}

// Frames returns all latched frames
func (r *Recorder) Frames() [][]rgb.Word {
	r.lock.Lock()
	defer r.lock.Unlock()
	var frames [][]rgb.Word
	for _, e := range r.Events {
		if e.Frame != nil {
			frames = append(frames, e.Frame)
		}
	}
	return frames
}

// Sleeps returns all recorded sleeps
func (r *Recorder) Sleeps() []time.Duration {
	r.lock.Lock()
	defer r.lock.Unlock()
	var sleeps []time.Duration
	for _, e := range r.Events {
		if e.Frame == nil {
			sleeps = append(sleeps, e.Sleep)
		}
	}
	return sleeps
}

// Writes returns the number of words written so far
func (r *Recorder) Writes() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.puts
}
