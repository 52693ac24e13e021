package controller

import (
	"context"
	"github.com/clambin/keymatrix/internal/keypad"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"time"
)

// Scanner returns the key pressed on the keypad, if any
type Scanner interface {
	Scan() (keypad.Key, bool, error)
}

// Dispatcher executes the command bound to a key
type Dispatcher interface {
	Dispatch(ctx context.Context, key keypad.Key) (bool, error)
}

// Indicator shows that a command is running
type Indicator interface {
	Set(on bool) error
}

// Controller polls the keypad and dispatches the pressed keys. Commands run on the polling goroutine:
// while an animation plays, the keypad is not scanned.
type Controller struct {
	scanner    Scanner
	dispatcher Dispatcher
	interval   time.Duration
	indicator  Indicator
	metrics    *metrics
}

var _ prometheus.Collector = &Controller{}

// Option configures a Controller
type Option func(*Controller)

// WithIndicator switches the Indicator on while a command runs
func WithIndicator(indicator Indicator) Option {
	return func(c *Controller) {
		c.indicator = indicator
	}
}

// New creates a Controller that scans the keypad every interval
func New(scanner Scanner, dispatcher Dispatcher, interval time.Duration, options ...Option) *Controller {
	c := Controller{
		scanner:    scanner,
		dispatcher: dispatcher,
		interval:   interval,
		metrics:    newMetrics(),
	}
	for _, option := range options {
		option(&c)
	}
	return &c
}

// Run polls the keypad until the context is canceled
func (c *Controller) Run(ctx context.Context) error {
	log.WithField("interval", c.interval).Info("controller started")
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("controller stopped")
			return nil
		case <-ticker.C:
			c.poll(ctx)
		}
	}
}

func (c *Controller) poll(ctx context.Context) {
	key, ok, err := c.scanner.Scan()
	if err != nil {
		log.WithError(err).Warn("keypad scan failed")
		return
	}
	if !ok {
		return
	}
	c.metrics.keys.WithLabelValues(key.String()).Inc()

	c.setIndicator(true)
	defer c.setIndicator(false)

	start := time.Now()
	found, err := c.dispatcher.Dispatch(ctx, key)
	if !found {
		return
	}
	c.metrics.duration.Observe(time.Since(start).Seconds())
	result := "success"
	if err != nil {
		result = "failed"
		log.WithError(err).WithField("key", key).Warn("command failed")
	}
	c.metrics.commands.WithLabelValues(key.String(), result).Inc()
}

func (c *Controller) setIndicator(on bool) {
	if c.indicator == nil {
		return
	}
	if err := c.indicator.Set(on); err != nil {
		log.WithError(err).Debug("failed to set status led")
	}
}

func (c *Controller) Describe(ch chan<- *prometheus.Desc) {
	c.metrics.Describe(ch)
}

func (c *Controller) Collect(ch chan<- prometheus.Metric) {
	c.metrics.Collect(ch)
}
