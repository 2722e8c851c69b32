package scrollview

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/glide/internal/ui/common"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// View renders the visible rows plus a one-column scrollbar.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	bodyWidth := max(0, m.width-1)
	top := m.TopRow()
	thumbTop, thumbLen := m.thumb()

	rows := make([]string, m.height)
	for r := range rows {
		idx := top + r
		var line string
		if idx < 0 || idx >= len(m.lines) {
			line = m.styles.Overscroll.Render(strings.Repeat(" ", bodyWidth))
		} else {
			text := runewidth.FillRight(runewidth.Truncate(m.lines[idx], bodyWidth, "…"), bodyWidth)
			if idx%2 == 1 {
				line = m.styles.RowAlt.Render(text)
			} else {
				line = m.styles.Row.Render(text)
			}
		}
		rows[r] = line + m.scrollbarCell(r, thumbTop, thumbLen)
	}

	out := strings.Join(rows, "\n")
	if m.zone != nil {
		out = m.zone.Mark(m.id, out)
	}
	return out
}

func (m *Model) scrollbarCell(row, thumbTop, thumbLen int) string {
	if !m.indicator.visible() || thumbLen == 0 {
		return " "
	}
	if row >= thumbTop && row < thumbTop+thumbLen {
		if m.indicator.bright() {
			return m.styles.Thumb.Render("┃")
		}
		return m.styles.ThumbDim.Render("┃")
	}
	return m.styles.Track.Render("│")
}

// thumb returns the scrollbar thumb rows. The thumb shrinks while the
// offset is stretched past either bound.
func (m *Model) thumb() (top, length int) {
	total := len(m.lines)
	if m.height <= 0 || total <= m.height {
		return 0, 0
	}
	length = max(1, m.height*m.height/total)
	maxOff := m.motion.MaxOffset()
	if maxOff <= 0 {
		return 0, length
	}

	over := 0.0
	switch {
	case m.offset < 0:
		over = -m.offset
	case m.offset > maxOff:
		over = m.offset - maxOff
	}
	if over > 0 {
		view := float64(m.height) * m.cellPx
		length = max(1, int(float64(length)*view/(view+over)))
	}

	frac := math.Max(0, math.Min(1, m.offset/maxOff))
	top = int(math.Round(frac * float64(m.height-length)))
	return top, length
}

// StatusLine renders the status and, when enabled, the recent offset trace,
// truncated to width.
func (m *Model) StatusLine(width int) string {
	s := m.styles
	phase := m.motion.Phase().String()
	parts := []string{
		s.StatusKey.Render("offset ") + s.StatusValue.Render(formatPx(m.offset)),
		s.StatusKey.Render("phase ") + s.StatusValue.Foreground(common.PhaseColor(phase)).Render(phase),
	}
	if !m.motion.Bounce() {
		parts = append(parts, s.Warning.Render("bounce off"))
	}
	if m.showTrace && len(m.trace) > 1 {
		parts = append(parts, s.Muted.Render(sparkline(m.trace)))
	}
	line := strings.Join(parts, s.HelpSeparator.Render("  "))
	return ansi.Truncate(line, width, "…")
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "px"
}

func sparkline(values []float64) string {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		i := 0
		if hi > lo {
			i = int((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
		}
		b.WriteRune(sparkBlocks[i])
	}
	return b.String()
}

func floorDiv(v, unit float64) int {
	if unit <= 0 {
		return 0
	}
	return int(math.Floor(v / unit))
}
