package keypad

import (
	"context"
	"errors"
	"io"
	"periph.io/x/conn/v3/gpio"
	"sync"
	"unicode"
)

// VirtualPad emulates the wiring of a 4x4 keypad: a pressed key connects its row to its column.
// A press is a short tap: it is released as soon as a scan has seen it.
type VirtualPad struct {
	rows    [Rows]gpio.Level
	pressed Key
	lock    sync.Mutex
}

// Press taps a key. It returns false if the key is not on the keypad.
func (p *VirtualPad) Press(k Key) bool {
	if _, _, ok := k.Position(); !ok {
		return false
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.pressed = k
	return true
}

// Rows returns the row pins of the keypad
func (p *VirtualPad) Rows() []Output {
	rows := make([]Output, Rows)
	for i := range rows {
		rows[i] = virtualRow{pad: p, row: i}
	}
	return rows
}

// Cols returns the column pins of the keypad
func (p *VirtualPad) Cols() []Input {
	cols := make([]Input, Columns)
	for i := range cols {
		cols[i] = virtualColumn{pad: p, col: i}
	}
	return cols
}

type virtualRow struct {
	pad *VirtualPad
	row int
}

func (r virtualRow) Out(l gpio.Level) error {
	r.pad.lock.Lock()
	defer r.pad.lock.Unlock()
	r.pad.rows[r.row] = l
	return nil
}

type virtualColumn struct {
	pad *VirtualPad
	col int
}

func (c virtualColumn) Read() gpio.Level {
	c.pad.lock.Lock()
	defer c.pad.lock.Unlock()
	row, col, ok := c.pad.pressed.Position()
	if !ok || col != c.col || c.pad.rows[row] != gpio.High {
		return gpio.Low
	}
	c.pad.pressed = NoKey
	return gpio.High
}

// ErrQuit is returned by ReadKeys when the user asks to stop
var ErrQuit = errors.New("quit")

// ReadKeys presses the keys typed on r. Letters are not case-sensitive. Ctrl-C, Ctrl-D and 'q' stop
// reading with ErrQuit.
func ReadKeys(ctx context.Context, r io.Reader, pad *VirtualPad) error {
	buf := make([]byte, 1)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n == 1 {
			switch b := buf[0]; b {
			case 0x03, 0x04, 'q':
				return ErrQuit
			default:
				pad.Press(Key(unicode.ToUpper(rune(b))))
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
