package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/simplecrm/internal/i18n"
)

const drawerWidth = 20

func (a *App) renderHeader() string {
	left := headerAppStyle.Render("≡ " + a.loc.T(i18n.AppTitle))
	right := ""
	if a.page != nil {
		right = headerPageStyle.Render(a.page.Title() + " ")
	}
	leftW := ansi.StringWidth(left)
	rightW := ansi.StringWidth(right)
	gap := 1
	if leftW+rightW+1 < a.width {
		gap = a.width - leftW - rightW
	}
	return renderBar(headerBarStyle, max(1, a.width), left+strings.Repeat(" ", gap)+right, colorMantle)
}

func (a *App) renderDrawer(height int) string {
	lines := make([]string, 0, len(a.router.Links()))
	for i, l := range a.router.Links() {
		label := a.loc.T(l.LabelID)
		prefix := string(rune('1'+i)) + " "
		if l.Route == a.route {
			lines = append(lines, drawerActiveStyle.Render("▶ "+prefix+label))
		} else {
			lines = append(lines, drawerInactiveStyle.Render("  "+prefix+label))
		}
	}
	return drawerStyle.Width(drawerWidth).Height(max(1, height)).Render(strings.Join(lines, "\n"))
}

func (a *App) renderStatusBar() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = a.loc.T(i18n.AppReady)
	}
	if a.statusErr {
		return renderBar(statusErrBarStyle, max(1, a.width), msg, colorSurface0)
	}
	return renderBar(statusBarStyle, max(1, a.width), msg, colorSurface0)
}

func (a *App) renderFooter() string {
	bindings := a.keys.BindingsForScope(a.activeScope())
	bg := colorMantle
	kStyle := keyStyle.Background(bg)
	descStyle := lipgloss.NewStyle().Foreground(colorMuted).Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
		h := kb.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, kStyle.Render(h.Key)+space+descStyle.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = descStyle.Render(a.loc.T(i18n.AppNoShortcuts))
	}
	return renderBar(footerStyle, max(1, a.width), line, bg)
}

func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}
