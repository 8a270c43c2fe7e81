package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/simplecrm/internal/i18n"
)

// NotFoundPage is shown for paths the router does not know.
type NotFoundPage struct {
	loc        *i18n.Localizer
	path       string
	suggestion string
}

func NewNotFoundPage(loc *i18n.Localizer, path, suggestion string) *NotFoundPage {
	return &NotFoundPage{loc: loc, path: path, suggestion: suggestion}
}

func (p *NotFoundPage) Route() string { return p.path }
func (p *NotFoundPage) Title() string { return p.loc.T(i18n.NotFoundTitle) }
func (p *NotFoundPage) Scope() string { return scopeNotFound }

func (p *NotFoundPage) Mount() tea.Cmd { return nil }

func (p *NotFoundPage) Unmount() {}

func (p *NotFoundPage) Update(tea.Msg) tea.Cmd { return nil }

// Suggestion returns the closest known route, or "".
func (p *NotFoundPage) Suggestion() string { return p.suggestion }

func (p *NotFoundPage) View(width, height int) string {
	out := titleStyle.Render(p.Title()) + "\n\n" + p.loc.Tf(i18n.NotFoundBody, p.path)
	if p.suggestion != "" {
		out += "\n\n" + mutedStyle.Render(p.loc.Tf(i18n.NotFoundSuggest, keyStyle.Render(p.suggestion)))
	}
	return fitHeight(out, height)
}
