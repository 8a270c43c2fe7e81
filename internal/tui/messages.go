package tui

import tea "github.com/charmbracelet/bubbletea"

type StatusMsg struct {
	Text  string
	IsErr bool
}

// NavigateMsg asks the shell to route to Path.
type NavigateMsg struct {
	Path string
}

type PushScreenMsg struct {
	Screen Screen
}

type PopScreenMsg struct{}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func ErrorCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, IsErr: true} }
}

func NavigateCmd(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}
