// Package tui is the SimpleCRM terminal interface: an app bar, a drawer of
// routed pages, a status bar and a footer of key hints.
package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/simplecrm/internal/config"
	"github.com/jask/simplecrm/internal/i18n"
	"github.com/jask/simplecrm/internal/query"
)

// Deps are the collaborators injected into the UI.
type Deps struct {
	Context    context.Context
	Executor   *query.Executor
	Localizer  *i18n.Localizer
	Config     config.Config
	ConfigPath string
	Logger     *zap.Logger
	Keys       *KeyRegistry
}

// App is the root Bubble Tea model.
type App struct {
	router     *Router
	page       Page
	route      string
	startRoute string
	drawerOpen bool
	screens    ScreenStack
	keys       *KeyRegistry
	loc        *i18n.Localizer
	log        *zap.Logger
	status     string
	statusErr  bool
	width      int
	height     int
	quitting   bool
}

// New wires the pages and returns the root model.
func New(deps Deps) (*App, error) {
	if deps.Executor == nil {
		return nil, errors.New("tui: executor is required")
	}
	if deps.Localizer == nil {
		return nil, errors.New("tui: localizer is required")
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Keys == nil {
		deps.Keys = NewKeyRegistry(DefaultKeyBindings())
	}

	a := &App{
		keys:       deps.Keys,
		loc:        deps.Localizer,
		log:        deps.Logger,
		drawerOpen: true,
		startRoute: deps.Config.UI.StartRoute,
		width:      100,
		height:     30,
	}
	a.router = NewRouter(func(path, suggestion string) Page {
		return NewNotFoundPage(deps.Localizer, path, suggestion)
	})
	a.router.Register(NewOverviewPage(deps.Localizer, deps.Config.UI.MarkdownStyle), i18n.NavOverview)
	a.router.Register(NewContactsPage(deps.Context, deps.Executor, deps.Localizer, deps.Keys, deps.Logger), i18n.NavContacts)
	a.router.Register(NewSettingsPage(deps.Executor, deps.Localizer, deps.Keys, deps.Config, deps.ConfigPath, deps.Logger), i18n.NavSettings)
	return a, nil
}

func (a *App) Init() tea.Cmd {
	start := a.startRoute
	if strings.TrimSpace(start) == "" {
		start = RouteOverview
	}
	return a.Navigate(start)
}

// Navigate unmounts the active page and mounts the page for path.
func (a *App) Navigate(path string) tea.Cmd {
	next, clean := a.router.Resolve(path)
	if a.page != nil {
		a.page.Unmount()
	}
	a.page = next
	a.route = clean
	a.status = ""
	a.statusErr = false
	a.log.Debug("navigate", zap.String("route", clean))
	cmd := next.Mount()
	a.resizePage()
	return cmd
}

// bodySize returns the area left for the page between the bars and beside
// the drawer. Every bar is one line.
func (a *App) bodySize() (int, int) {
	height := max(0, a.height-3)
	width := max(1, a.width)
	if a.drawerOpen {
		width = max(1, a.width-lipgloss.Width(a.renderDrawer(1)))
	}
	return width, height
}

func (a *App) resizePage() {
	if r, ok := a.page.(Resizer); ok {
		r.SetSize(a.bodySize())
	}
}

// Route returns the active path.
func (a *App) Route() string { return a.route }

// Page returns the active page.
func (a *App) Page() Page { return a.page }

func (a *App) SetStatus(text string) {
	a.status = text
	a.statusErr = false
}

func (a *App) activeScope() string {
	if top := a.screens.Top(); top != nil {
		return top.Scope()
	}
	if a.page == nil {
		return "app"
	}
	return a.page.Scope()
}

func (a *App) capturesInput() bool {
	if a.screens.Len() > 0 {
		return true
	}
	c, ok := a.page.(InputCapturer)
	return ok && c.CapturesInput()
}

func (a *App) quit() tea.Cmd {
	if a.page != nil {
		a.page.Unmount()
	}
	a.quitting = true
	return tea.Quit
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.resizePage()
		return a, nil
	case StatusMsg:
		a.status = msg.Text
		a.statusErr = msg.IsErr
		return a, nil
	case NavigateMsg:
		return a, a.Navigate(msg.Path)
	case PushScreenMsg:
		a.screens.Push(msg.Screen)
		return a, nil
	case PopScreenMsg:
		a.screens.Pop()
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	// Async results belong to the page even while a screen is open.
	var cmds []tea.Cmd
	if top := a.screens.Top(); top != nil {
		cmds = append(cmds, a.updateScreen(top, msg))
	}
	if a.page != nil {
		cmds = append(cmds, a.page.Update(msg))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) updateScreen(top Screen, msg tea.Msg) tea.Cmd {
	next, cmd, pop := top.Update(msg)
	if pop {
		a.screens.Pop()
		return cmd
	}
	a.screens.Replace(next)
	return cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return a.quit()
	}
	if top := a.screens.Top(); top != nil {
		return a.updateScreen(top, msg)
	}
	if a.capturesInput() {
		return a.page.Update(msg)
	}

	scope := a.activeScope()
	switch {
	case a.keys.IsAction(msg, "quit", scope):
		return a.quit()
	case a.keys.IsAction(msg, "toggle-drawer", scope):
		a.drawerOpen = !a.drawerOpen
		a.resizePage()
		return nil
	case a.keys.IsAction(msg, "goto", scope):
		a.screens.Push(newGotoScreen(a.loc, a.keys, a.route))
		return nil
	}
	for i, link := range a.router.Links() {
		if a.keys.IsAction(msg, "nav-"+string(rune('1'+i)), scope) {
			if link.Route == a.route {
				return nil
			}
			return a.Navigate(link.Route)
		}
	}
	if a.page != nil {
		return a.page.Update(msg)
	}
	return nil
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	header := a.renderHeader()
	status := a.renderStatusBar()
	footer := a.renderFooter()
	bodyWidth, bodyHeight := a.bodySize()

	var drawer string
	if a.drawerOpen {
		drawer = a.renderDrawer(bodyHeight)
	}

	var body string
	if a.page != nil && bodyHeight > 0 {
		body = a.page.View(bodyWidth, bodyHeight)
	}
	if top := a.screens.Top(); top != nil && bodyHeight > 0 {
		body = RenderPopup(body, top.View(max(20, bodyWidth-12), max(6, bodyHeight-6)), bodyWidth, bodyHeight)
	}
	body = fitHeight(body, bodyHeight)
	if drawer != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, drawer, body)
	}

	view := strings.Join([]string{header, body, status, footer}, "\n")
	view = fitHeight(view, max(1, a.height))
	return appStyle.Width(max(1, a.width)).MaxWidth(max(1, a.width)).Render(view)
}
