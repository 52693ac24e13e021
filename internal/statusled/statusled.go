package statusled

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// LED is an on-board LED exposed through sysfs (/sys/class/leds/<name>). keymatrix switches it on while
// a command runs.
type LED struct {
	brightnessPath string
	triggerPath    string
}

// New returns the LED at the provided sysfs directory
func New(path string) LED {
	return LED{
		brightnessPath: filepath.Join(path, "brightness"),
		triggerPath:    filepath.Join(path, "trigger"),
	}
}

// Claim detaches the LED from its kernel trigger, so it only changes when we set it
func (l LED) Claim() error {
	return l.SetActiveMode("none")
}

func (l LED) GetBrightness() (int, error) {
	content, err := os.ReadFile(l.brightnessPath)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(content)))
}

func (l LED) SetBrightness(value int) error {
	return os.WriteFile(l.brightnessPath, []byte(strconv.Itoa(value)), 0644)
}

// Set switches the LED on or off
func (l LED) Set(on bool) error {
	if on {
		return l.SetBrightness(255)
	}
	return l.SetBrightness(0)
}

// GetModes returns the triggers supported by the LED
func (l LED) GetModes() ([]string, error) {
	modes, _, err := l.readTrigger()
	return modes, err
}

// GetActiveMode returns the current trigger. The kernel marks it with square brackets.
func (l LED) GetActiveMode() (string, error) {
	_, active, err := l.readTrigger()
	return active, err
}

func (l LED) SetActiveMode(mode string) error {
	modes, err := l.GetModes()
	if err != nil {
		return err
	}
	if !slices.Contains(modes, mode) {
		return errors.New("invalid mode: " + mode)
	}
	return os.WriteFile(l.triggerPath, []byte(mode), 0644)
}

func (l LED) readTrigger() ([]string, string, error) {
	content, err := os.ReadFile(l.triggerPath)
	if err != nil {
		return nil, "", err
	}
	var active string
	modes := strings.Fields(string(content))
	for i, mode := range modes {
		if length := len(mode); length > 2 && mode[0] == '[' && mode[length-1] == ']' {
			modes[i] = mode[1 : length-1]
			active = modes[i]
		}
	}
	return modes, active, nil
}
