package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var popupCardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorAccent).
	Padding(1, 2)

// RenderPopup draws popup in a rounded card centred over base. The result is
// exactly width columns by height rows; base stays visible around the card.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := strings.Split(fitHeight(base, height), "\n")
	for i := range rows {
		rows[i] = padLine(rows[i], width)
	}

	card := strings.Split(popupCardStyle.Render(popup), "\n")
	cardW := lipgloss.Width(strings.Join(card, "\n"))
	x := max(0, (width-cardW)/2)
	y := max(0, (height-len(card))/2)
	for i, line := range card {
		if y+i >= height {
			break
		}
		rows[y+i] = splice(rows[y+i], padLine(line, cardW), x, width)
	}
	return strings.Join(rows, "\n")
}

// splice writes over onto row starting at column x, keeping row's cells on
// either side. row must already be width columns wide.
func splice(row, over string, x, width int) string {
	end := x + ansi.StringWidth(over)
	out := ansi.Truncate(row, x, "") + over
	if end < width {
		out += ansi.TruncateLeft(row, end, "")
	}
	return padLine(out, width)
}

func padLine(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if gap := width - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

// fitHeight trims or pads s to exactly height lines.
func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
