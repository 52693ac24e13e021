package matrix

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/clambin/keymatrix/internal/rgb"
	"io"
	"strings"
)

// Terminal renders frames as a grid of colored blocks. Each frame is drawn over the previous one.
type Terminal struct {
	Writer io.Writer
	// Raw terminals need an explicit carriage return
	Raw bool
}

var _ Display = &Terminal{}

var cell = lipgloss.NewStyle().Width(2)

func (t *Terminal) Show(frame []rgb.Word) error {
	_, err := fmt.Fprint(t.Writer, "\x1b[H\x1b[2J"+t.Render(frame))
	return err
}

// Render returns the frame as a string of styled rows
func (t *Terminal) Render(frame []rgb.Word) string {
	rows := make([]string, 0, rgb.Height)
	for row := range rgb.Height {
		cells := make([]string, 0, rgb.Width)
		for col := range rgb.Width {
			var w rgb.Word
			if i := rgb.Index(row, col); i < len(frame) {
				w = frame[i]
			}
			cells = append(cells, cell.Background(lipgloss.Color(w.Color().Hex())).Render("  "))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	output := lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
	if t.Raw {
		output = strings.ReplaceAll(output, "\n", "\r\n")
	}
	return output
}
