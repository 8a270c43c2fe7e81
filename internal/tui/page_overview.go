package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jask/simplecrm/internal/i18n"
)

// OverviewPage renders the landing page's Markdown.
type OverviewPage struct {
	loc   *i18n.Localizer
	style string

	cacheKey string
	rendered string
}

func NewOverviewPage(loc *i18n.Localizer, style string) *OverviewPage {
	if style == "" {
		style = "dark"
	}
	return &OverviewPage{loc: loc, style: style}
}

func (p *OverviewPage) Route() string { return RouteOverview }
func (p *OverviewPage) Title() string { return p.loc.T(i18n.NavOverview) }
func (p *OverviewPage) Scope() string { return scopeOverview }

func (p *OverviewPage) Mount() tea.Cmd { return nil }

func (p *OverviewPage) Unmount() {}

func (p *OverviewPage) Update(tea.Msg) tea.Cmd { return nil }

func (p *OverviewPage) markdown() string {
	return "# " + p.loc.T(i18n.OverviewHeader) + "\n\n" + p.loc.T(i18n.OverviewBody) + "\n"
}

func (p *OverviewPage) View(width, height int) string {
	md := p.markdown()
	key := p.loc.Locale() + "|" + strconv.Itoa(width)
	if key != p.cacheKey {
		p.cacheKey = key
		p.rendered = renderMarkdown(md, p.style, width)
	}
	return fitHeight(p.rendered, height)
}

// renderMarkdown falls back to the raw text when glamour cannot render.
func renderMarkdown(md, style string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(20, width-4)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
