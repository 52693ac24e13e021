package keypad

import (
	"fmt"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// OpenGPIO looks up the row and column pins by name. Columns are pulled down, so they read high
// only when a key connects them to the active row. periph's host drivers must be initialized first.
func OpenGPIO(rowNames, colNames []string) ([]Output, []Input, error) {
	rows := make([]Output, 0, len(rowNames))
	for _, name := range rowNames {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, nil, fmt.Errorf("row pin %q not found", name)
		}
		if err := p.Out(gpio.Low); err != nil {
			return nil, nil, fmt.Errorf("row pin %q: %w", name, err)
		}
		rows = append(rows, p)
	}
	cols := make([]Input, 0, len(colNames))
	for _, name := range colNames {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, nil, fmt.Errorf("column pin %q not found", name)
		}
		if err := p.In(gpio.PullDown, gpio.NoEdge); err != nil {
			return nil, nil, fmt.Errorf("column pin %q: %w", name, err)
		}
		cols = append(cols, p)
	}
	return rows, cols, nil
}
