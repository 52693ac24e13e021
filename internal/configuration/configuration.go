package configuration

import (
	"fmt"
	"github.com/clambin/keymatrix/version"
	"gopkg.in/alecthomas/kingpin.v2"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Configuration struct {
	Debug          bool
	Interval       time.Duration
	Port           int
	StatusLED      string
	DisplayConfiguration
	KeypadConfiguration
}

type DisplayConfiguration struct {
	Display string
	SPIPort string
}

type KeypadConfiguration struct {
	Keypad  string
	Rows    []string
	Columns []string
}

const (
	Terminal = "terminal"
	WS281x   = "ws281x"
	GPIO     = "gpio"
	None     = "none"
)

func GetConfigFromArgs(args []string) (Configuration, error) {
	var cfg Configuration
	var rows, cols string

	a := kingpin.New(filepath.Base(os.Args[0]), "keymatrix")
	a.Version(version.BuildVersion)
	a.HelpFlag.Short('h')
	a.VersionFlag.Short('v')
	a.Flag("debug", "Log debug messages").Short('d').Default("false").BoolVar(&cfg.Debug)
	a.Flag("interval", "Keypad polling interval").Default("100ms").DurationVar(&cfg.Interval)
	a.Flag("port", "HTTP listener port for the status API and Prometheus metrics (0 disables the listener)").Default("8080").IntVar(&cfg.Port)
	a.Flag("status-led", "path name to the sysfs directory of an activity LED (empty disables the LED)").Default("").StringVar(&cfg.StatusLED)
	a.Flag("display", "LED matrix output").Default(Terminal).EnumVar(&cfg.Display, Terminal, WS281x, None)
	a.Flag("spi", "SPI port of the LED strip (empty selects the first port)").Default("").StringVar(&cfg.SPIPort)
	a.Flag("keypad", "Keypad input").Default(Terminal).EnumVar(&cfg.Keypad, Terminal, GPIO)
	a.Flag("rows", "GPIO pins driving the keypad rows, top to bottom").Default("GPIO28,GPIO27,GPIO26,GPIO22").StringVar(&rows)
	a.Flag("cols", "GPIO pins reading the keypad columns, left to right").Default("GPIO21,GPIO20,GPIO19,GPIO18").StringVar(&cols)

	if _, err := a.Parse(args); err != nil {
		return cfg, fmt.Errorf("invalid command line arguments: %w", err)
	}
	if cfg.Interval <= 0 {
		return cfg, fmt.Errorf("invalid interval: %s", cfg.Interval)
	}

	var err error
	if cfg.Rows, err = pins(rows); err != nil {
		return cfg, fmt.Errorf("rows: %w", err)
	}
	if cfg.Columns, err = pins(cols); err != nil {
		return cfg, fmt.Errorf("cols: %w", err)
	}
	return cfg, nil
}

// Simulated reports whether the configuration reads keys from the terminal
func (c Configuration) Simulated() bool {
	return c.Keypad == Terminal
}

// Hardware reports whether the configuration needs periph's host drivers
func (c Configuration) Hardware() bool {
	return c.Keypad == GPIO || c.Display == WS281x
}

func pins(list string) ([]string, error) {
	var names []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) != 4 {
		return nil, fmt.Errorf("need 4 pins, got %d", len(names))
	}
	return names, nil
}
