package dispatcher

import (
	"context"
	"fmt"
	"github.com/clambin/keymatrix/internal/animation"
	"github.com/clambin/keymatrix/internal/keypad"
	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"
	"iter"
	"maps"
	"slices"
)

// Command is the action bound to a key: either SetStaticColor or RunAnimation
type Command interface {
	fmt.Stringer
	execute(ctx context.Context, e *animation.Engine) error
}

// SetStaticColor sets all pixels to one color
type SetStaticColor struct {
	Color colorful.Color
}

func (c SetStaticColor) String() string {
	return "color(" + c.Color.Hex() + ")"
}

func (c SetStaticColor) execute(_ context.Context, e *animation.Engine) error {
	return e.Fill(c.Color)
}

// RunAnimation plays an animation at a fixed frame rate
type RunAnimation struct {
	Animation animation.ID
	FPS       int
}

func (c RunAnimation) String() string {
	return fmt.Sprintf("%s@%dfps", c.Animation, c.FPS)
}

func (c RunAnimation) execute(ctx context.Context, e *animation.Engine) error {
	return e.Run(ctx, c.Animation, c.FPS)
}

// DefaultTable maps each key to its Command. Keys that are not in the table do nothing.
var DefaultTable = map[keypad.Key]Command{
	'0': RunAnimation{Animation: animation.AlternatingFill, FPS: 10},
	'1': RunAnimation{Animation: animation.ChannelWave, FPS: 10},
	'2': RunAnimation{Animation: animation.Letters, FPS: 2},
	'3': RunAnimation{Animation: animation.Palette, FPS: 2},
	'4': RunAnimation{Animation: animation.HueWave, FPS: 10},
	'5': RunAnimation{Animation: animation.Countdown, FPS: 10},
	'6': RunAnimation{Animation: animation.VerticalLines, FPS: 2},
	'A': SetStaticColor{Color: colorful.Color{R: 0, G: 0, B: 0}},
	'B': SetStaticColor{Color: colorful.Color{R: 0, G: 0, B: 1}},
	'C': SetStaticColor{Color: colorful.Color{R: 0.8, G: 0, B: 0}},
	'D': SetStaticColor{Color: colorful.Color{R: 0, G: 0.5, B: 0}},
	'#': SetStaticColor{Color: colorful.Color{R: 0.2, G: 0.2, B: 0.2}},
}

// Dispatcher executes the Command bound to a key
type Dispatcher struct {
	engine *animation.Engine
	table  map[keypad.Key]Command
}

// New creates a Dispatcher using DefaultTable
func New(engine *animation.Engine) *Dispatcher {
	return &Dispatcher{engine: engine, table: DefaultTable}
}

// Lookup returns the Command bound to the key
func (d *Dispatcher) Lookup(key keypad.Key) (Command, bool) {
	cmd, ok := d.table[key]
	return cmd, ok
}

// Bindings returns the key bindings, ordered by key
func (d *Dispatcher) Bindings() iter.Seq2[keypad.Key, Command] {
	keys := slices.Sorted(maps.Keys(d.table))
	return func(yield func(keypad.Key, Command) bool) {
		for _, key := range keys {
			if !yield(key, d.table[key]) {
				return
			}
		}
	}
}

// Dispatch executes the Command bound to the key. It returns false if the key has no Command, in which
// case nothing is written to the matrix.
func (d *Dispatcher) Dispatch(ctx context.Context, key keypad.Key) (bool, error) {
	cmd, ok := d.Lookup(key)
	if !ok {
		log.WithField("key", key).Debug("no command for key")
		return false, nil
	}
	log.WithFields(log.Fields{"key": key, "command": cmd}).Debug("dispatching")
	if err := cmd.execute(ctx, d.engine); err != nil {
		return true, fmt.Errorf("%s: %w", cmd, err)
	}
	return true, nil
}
