package controller

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ prometheus.Collector = metrics{}

type metrics struct {
	keys     *prometheus.CounterVec
	commands *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics() *metrics {
	return &metrics{
		keys: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keymatrix_keys_total",
				Help: "Number of key presses detected on the keypad",
			},
			[]string{"key"},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keymatrix_commands_total",
				Help: "Number of commands executed",
			},
			[]string{"key", "result"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "keymatrix_command_duration_seconds",
				Help:    "Time spent executing a command",
				Buckets: []float64{.001, .01, .1, 1, 5, 10, 30},
			},
		),
	}
}

func (m metrics) Describe(ch chan<- *prometheus.Desc) {
	m.keys.Describe(ch)
	m.commands.Describe(ch)
	m.duration.Describe(ch)
}

func (m metrics) Collect(ch chan<- prometheus.Metric) {
	m.keys.Collect(ch)
	m.commands.Collect(ch)
	m.duration.Collect(ch)
}
