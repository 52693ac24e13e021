package matrix

import (
	"errors"
	"github.com/clambin/keymatrix/internal/rgb"
	"github.com/prometheus/client_golang/prometheus"
	"sync"
)

// Sink receives a frame one pixel at a time, in ascending index order. Latch commits the frame.
type Sink interface {
	Put(word rgb.Word) error
	Latch() error
}

// Display shows a complete frame
type Display interface {
	Show(frame []rgb.Word) error
}

// ErrOverflow is returned when more than rgb.Pixels words are written before a Latch
var ErrOverflow = errors.New("pixel index out of range")

// Strip implements a Sink for a Display. Like the shift register of a real LED strip, pixels that were
// not written since the last Latch keep their previous value.
type Strip struct {
	display Display
	pixels  [rgb.Pixels]rgb.Word
	next    int
	frames  prometheus.Counter
	words   prometheus.Counter
	lock    sync.Mutex
}

var _ Sink = &Strip{}
var _ prometheus.Collector = &Strip{}

// NewStrip creates a Strip that latches frames to the provided Display
func NewStrip(display Display) *Strip {
	return &Strip{
		display: display,
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "keymatrix",
			Subsystem: "matrix",
			Name:      "frames_total",
			Help:      "Number of frames latched to the display",
		}),
		words: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "keymatrix",
			Subsystem: "matrix",
			Name:      "words_total",
			Help:      "Number of color words written to the strip",
		}),
	}
}

// Put writes the next pixel
func (s *Strip) Put(word rgb.Word) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.next >= rgb.Pixels {
		return ErrOverflow
	}
	s.pixels[s.next] = word
	s.next++
	s.words.Inc()
	return nil
}

// Latch shows the current frame and starts a new one
func (s *Strip) Latch() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.next = 0
	s.frames.Inc()
	return s.display.Show(s.pixels[:])
}

// Pixels returns the last latched (or partially written) frame
func (s *Strip) Pixels() []rgb.Word {
	s.lock.Lock()
	defer s.lock.Unlock()
	frame := make([]rgb.Word, rgb.Pixels)
	copy(frame, s.pixels[:])
	return frame
}

func (s *Strip) Describe(ch chan<- *prometheus.Desc) {
	s.frames.Describe(ch)
	s.words.Describe(ch)
}

func (s *Strip) Collect(ch chan<- prometheus.Metric) {
	s.frames.Collect(ch)
	s.words.Collect(ch)
}

// Discard is a Display that drops all frames
type Discard struct{}

func (Discard) Show(_ []rgb.Word) error {
	return nil
}
