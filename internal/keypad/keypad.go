package keypad

import (
	"fmt"
	"periph.io/x/conn/v3/gpio"
	"time"
)

// Key is a symbol on the keypad
type Key rune

// NoKey is returned when no key is pressed
const NoKey Key = 0

// Layout is the symbol printed on each key, by row and column
var Layout = [Rows][Columns]Key{
	{'1', '2', '3', 'A'},
	{'4', '5', '6', 'B'},
	{'7', '8', '9', 'C'},
	{'*', '0', '#', 'D'},
}

const (
	Rows    = 4
	Columns = 4

	// DefaultSettle is the time a row needs to stabilize after it's been driven
	DefaultSettle = 10 * time.Microsecond
)

func (k Key) String() string {
	if k == NoKey {
		return "none"
	}
	return string(k)
}

// Position returns the row and column of the key
func (k Key) Position() (row, col int, ok bool) {
	for row = range Rows {
		for col = range Columns {
			if Layout[row][col] == k {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}

// Output drives a row. Any periph gpio.PinOut satisfies it.
type Output interface {
	Out(l gpio.Level) error
}

// Input reads a column. Any periph gpio.PinIn satisfies it.
type Input interface {
	Read() gpio.Level
}

// Scanner reads a 4x4 matrix keypad by strobing one row at a time and sampling the columns
type Scanner struct {
	rows   []Output
	cols   []Input
	settle time.Duration
	delay  func(time.Duration)
}

// Option configures a Scanner
type Option func(*Scanner)

// WithSettle sets the time to wait between driving a row and reading the columns
func WithSettle(d time.Duration) Option {
	return func(s *Scanner) {
		s.settle = d
	}
}

// WithDelay sets the function used to wait for a row to settle. The default is time.Sleep.
func WithDelay(f func(time.Duration)) Option {
	return func(s *Scanner) {
		s.delay = f
	}
}

// New creates a Scanner for the provided row and column pins
func New(rows []Output, cols []Input, options ...Option) (*Scanner, error) {
	if len(rows) != Rows || len(cols) != Columns {
		return nil, fmt.Errorf("keypad needs %d rows and %d columns (got %d, %d)", Rows, Columns, len(rows), len(cols))
	}
	s := Scanner{
		rows:   rows,
		cols:   cols,
		settle: DefaultSettle,
		delay:  time.Sleep,
	}
	for _, option := range options {
		option(&s)
	}
	return &s, nil
}

// Scan returns the pressed key, if any. Rows are scanned top to bottom and columns left to right:
// the first column that reads high wins and the scan stops there.
func (s *Scanner) Scan() (Key, bool, error) {
	for row := range s.rows {
		if err := s.strobe(row); err != nil {
			return NoKey, false, err
		}
		s.delay(s.settle)
		for col, in := range s.cols {
			if in.Read() == gpio.High {
				return Layout[row][col], true, nil
			}
		}
	}
	return NoKey, false, nil
}

// strobe drives the selected row high and all others low
func (s *Scanner) strobe(selected int) error {
	for row, out := range s.rows {
		if err := out.Out(gpio.Level(row == selected)); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
	}
	return nil
}
