package sim

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// WriteTable renders every stride-th frame (and always the last) as a
// bordered table followed by the summary line. A stride below 1 prints all
// frames.
func (t *Trace) WriteTable(w io.Writer, stride int) error {
	if stride < 1 {
		stride = 1
	}
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("#", "ms", "offset", "phase").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i, f := range t.Frames {
		if i%stride != 0 && i != len(t.Frames)-1 {
			continue
		}
		tbl.Row(
			strconv.Itoa(i),
			strconv.FormatFloat(float64(f.Elapsed.Microseconds())/1000, 'f', 1, 64),
			strconv.FormatFloat(f.Offset, 'f', 2, 64),
			f.Phase,
		)
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", tbl.String(), t.Summary())
	return err
}
