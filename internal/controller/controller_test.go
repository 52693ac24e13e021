package controller

import (
	"context"
	"errors"
	"github.com/clambin/keymatrix/internal/animation"
	"github.com/clambin/keymatrix/internal/dispatcher"
	"github.com/clambin/keymatrix/internal/keypad"
	"github.com/clambin/keymatrix/internal/rgb"
	"github.com/clambin/keymatrix/internal/testutils"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

type fakeScanner struct {
	keys []keypad.Key
	err  error
	lock sync.Mutex
}

func (s *fakeScanner) Scan() (keypad.Key, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.err != nil {
		return keypad.NoKey, false, s.err
	}
	if len(s.keys) == 0 {
		return keypad.NoKey, false, nil
	}
	key := s.keys[0]
	s.keys = s.keys[1:]
	return key, true, nil
}

type fakeDispatcher struct {
	keys []keypad.Key
	err  error
	lock sync.Mutex
}

func (d *fakeDispatcher) Dispatch(_ context.Context, key keypad.Key) (bool, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.keys = append(d.keys, key)
	return key != '9', d.err
}

func (d *fakeDispatcher) dispatched() []keypad.Key {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]keypad.Key(nil), d.keys...)
}

type indicator struct {
	states []bool
	lock   sync.Mutex
}

func (i *indicator) Set(on bool) error {
	i.lock.Lock()
	defer i.lock.Unlock()
	i.states = append(i.states, on)
	return nil
}

func (i *indicator) get() []bool {
	i.lock.Lock()
	defer i.lock.Unlock()
	return append([]bool(nil), i.states...)
}

func runController(t *testing.T, c *Controller) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, c.Run(ctx))
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}

func TestController_Run(t *testing.T) {
	s := fakeScanner{keys: []keypad.Key{'1', 'B', '9'}}
	d := fakeDispatcher{}
	var led indicator
	c := New(&s, &d, 10*time.Millisecond, WithIndicator(&led))
	stop := runController(t, c)

	require.Eventually(t, func() bool {
		return len(d.dispatched()) == 3
	}, time.Second, 10*time.Millisecond)
	stop()

	assert.Equal(t, []keypad.Key{'1', 'B', '9'}, d.dispatched())
	assert.Equal(t, []bool{true, false, true, false, true, false}, led.get())

	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.keys.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.keys.WithLabelValues("9")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.commands.WithLabelValues("B", "success")))
	assert.Zero(t, testutil.ToFloat64(c.metrics.commands.WithLabelValues("9", "success")))
}

func TestController_Failures(t *testing.T) {
	s := fakeScanner{err: errors.New("pin failure")}
	d := fakeDispatcher{err: errors.New("sink failure")}
	c := New(&s, &d, 10*time.Millisecond)
	stop := runController(t, c)

	assert.Never(t, func() bool {
		return len(d.dispatched()) > 0
	}, 100*time.Millisecond, 10*time.Millisecond)

	s.lock.Lock()
	s.err = nil
	s.keys = []keypad.Key{'C'}
	s.lock.Unlock()

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(c.metrics.commands.WithLabelValues("C", "failed")) == 1
	}, time.Second, 10*time.Millisecond)
	stop()
}

func TestController_Dispatcher(t *testing.T) {
	var r testutils.Recorder
	var pad keypad.VirtualPad
	scanner, err := keypad.New(pad.Rows(), pad.Cols(), keypad.WithSettle(0))
	require.NoError(t, err)
	c := New(scanner, dispatcher.New(animation.New(&r, &r)), 10*time.Millisecond)
	stop := runController(t, c)

	require.True(t, pad.Press('D'))
	require.Eventually(t, func() bool {
		return len(r.Frames()) == 1
	}, time.Second, 10*time.Millisecond)

	require.True(t, pad.Press('7'))
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(c.metrics.keys.WithLabelValues("7")) == 1
	}, time.Second, 10*time.Millisecond)
	stop()

	frames := r.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, rgb.Encode(0, 0.5, 0), frames[0][0])
	assert.Equal(t, 4, testutil.CollectAndCount(c))
}
