package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/clambin/keymatrix/internal/animation"
	"github.com/clambin/keymatrix/internal/configuration"
	"github.com/clambin/keymatrix/internal/controller"
	"github.com/clambin/keymatrix/internal/dispatcher"
	"github.com/clambin/keymatrix/internal/keypad"
	"github.com/clambin/keymatrix/internal/matrix"
	"github.com/clambin/keymatrix/internal/server"
	"github.com/clambin/keymatrix/internal/statusled"
	"github.com/clambin/keymatrix/version"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"io"
	"os"
	"os/signal"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"strings"
	"syscall"
)

func main() {
	cfg, err := configuration.GetConfigFromArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	log.WithField("version", version.BuildVersion).Info("starting")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = run(ctx, cfg); err != nil {
		log.WithError(err).Fatal("keymatrix failed")
	}
	log.Info("exiting")
}

func run(ctx context.Context, cfg configuration.Configuration) error {
	if cfg.Hardware() {
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("periph: %w", err)
		}
	}

	raw := cfg.Simulated() && term.IsTerminal(int(os.Stdin.Fd()))
	if raw {
		fd := int(os.Stdin.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer func() { _ = term.Restore(fd, state) }()
		log.SetOutput(crlfWriter{w: os.Stderr})
	}

	display, closeDisplay, err := makeDisplay(cfg, raw)
	if err != nil {
		return err
	}
	defer closeDisplay()

	strip := matrix.NewStrip(display)
	d := dispatcher.New(animation.New(strip, animation.RealClock{}))

	var pad keypad.VirtualPad
	rows, cols := pad.Rows(), pad.Cols()
	if !cfg.Simulated() {
		if rows, cols, err = keypad.OpenGPIO(cfg.Rows, cfg.Columns); err != nil {
			return fmt.Errorf("keypad: %w", err)
		}
	}
	scanner, err := keypad.New(rows, cols)
	if err != nil {
		return fmt.Errorf("keypad: %w", err)
	}

	var options []controller.Option
	if cfg.StatusLED != "" {
		led := statusled.New(cfg.StatusLED)
		if err = led.Claim(); err != nil {
			return fmt.Errorf("status led: %w", err)
		}
		options = append(options, controller.WithIndicator(led))
	}
	c := controller.New(scanner, d, cfg.Interval, options...)
	prometheus.MustRegister(strip, c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Simulated() {
		log.Info("reading keys from the terminal. press q to quit")
		go func() {
			if err := keypad.ReadKeys(ctx, os.Stdin, &pad); err != nil && !errors.Is(err, keypad.ErrQuit) {
				log.WithError(err).Warn("failed to read keys")
			}
			cancel()
		}()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Run(ctx) })
	if cfg.Port > 0 {
		s := server.Server{Port: cfg.Port, Matrix: strip, Bindings: d}
		g.Go(func() error { return s.Run(ctx) })
	}
	return g.Wait()
}

func makeDisplay(cfg configuration.Configuration, raw bool) (matrix.Display, func(), error) {
	switch cfg.Display {
	case configuration.WS281x:
		port, err := spireg.Open(cfg.SPIPort)
		if err != nil {
			return nil, nil, fmt.Errorf("spi: %w", err)
		}
		strip, err := matrix.NewWS281x(port)
		if err != nil {
			_ = port.Close()
			return nil, nil, err
		}
		return strip, func() {
			if err := strip.Close(); err != nil {
				log.WithError(err).Warn("failed to switch off LED strip")
			}
			_ = port.Close()
		}, nil
	case configuration.Terminal:
		return &matrix.Terminal{Writer: os.Stdout, Raw: raw}, func() {}, nil
	default:
		return matrix.Discard{}, func() {}, nil
	}
}

// crlfWriter keeps log lines readable while the terminal is in raw mode
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(c.w, strings.ReplaceAll(string(p), "\n", "\r\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}
