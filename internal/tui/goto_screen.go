package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/simplecrm/internal/i18n"
)

// gotoScreen prompts for a route and navigates to it on enter.
type gotoScreen struct {
	loc   *i18n.Localizer
	keys  *KeyRegistry
	input textinput.Model
}

func newGotoScreen(loc *i18n.Localizer, keys *KeyRegistry, current string) *gotoScreen {
	ti := textinput.New()
	ti.Placeholder = loc.T(i18n.AppGotoPrompt)
	ti.Prompt = "› "
	ti.CharLimit = 128
	ti.Width = 32
	ti.SetValue(current)
	ti.CursorEnd()
	ti.Focus()
	return &gotoScreen{loc: loc, keys: keys, input: ti}
}

func (s *gotoScreen) Title() string { return s.loc.T(i18n.AppGoto) }
func (s *gotoScreen) Scope() string { return scopeGoto }

func (s *gotoScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case s.keys.IsAction(km, "close", scopeGoto):
			return s, nil, true
		case s.keys.IsAction(km, "submit", scopeGoto):
			return s, NavigateCmd(s.input.Value()), true
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

func (s *gotoScreen) View(width, height int) string {
	return titleStyle.Render(s.Title()) + "\n\n" + s.input.View() + "\n\n" +
		mutedStyle.Render("[enter] "+s.Title()+"  [esc] "+s.loc.T(i18n.ContactsDialogCancel))
}
