package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/simplecrm/internal/config"
	"github.com/jask/simplecrm/internal/i18n"
	"github.com/jask/simplecrm/internal/query"
)

// SettingsPage shows the active connection settings and lets the user
// switch language and clear the response cache.
type SettingsPage struct {
	exec    *query.Executor
	loc     *i18n.Localizer
	keys    *KeyRegistry
	cfg     config.Config
	cfgPath string
	log     *zap.Logger
}

func NewSettingsPage(exec *query.Executor, loc *i18n.Localizer, keys *KeyRegistry, cfg config.Config, cfgPath string, log *zap.Logger) *SettingsPage {
	if log == nil {
		log = zap.NewNop()
	}
	if keys == nil {
		keys = NewKeyRegistry(DefaultKeyBindings())
	}
	return &SettingsPage{exec: exec, loc: loc, keys: keys, cfg: cfg, cfgPath: cfgPath, log: log.Named("settings")}
}

func (p *SettingsPage) Route() string { return RouteSettings }
func (p *SettingsPage) Title() string { return p.loc.T(i18n.SettingsTitle) }
func (p *SettingsPage) Scope() string { return scopeSettings }

func (p *SettingsPage) Mount() tea.Cmd { return nil }

func (p *SettingsPage) Unmount() {}

// Config returns the settings as last saved by this page.
func (p *SettingsPage) Config() config.Config { return p.cfg }

func (p *SettingsPage) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case p.keys.IsAction(km, "cycle-locale", scopeSettings):
		return p.cycleLocale()
	case p.keys.IsAction(km, "purge-cache", scopeSettings):
		return p.purgeCache()
	}
	return nil
}

func (p *SettingsPage) cycleLocale() tea.Cmd {
	next := p.loc.Next()
	if err := p.loc.SetLocale(next); err != nil {
		return ErrorCmd(err.Error())
	}
	p.cfg.UI.Locale = p.loc.Locale()
	if p.cfgPath == "" {
		return nil
	}
	locale, path, loc, log := p.cfg.UI.Locale, p.cfgPath, p.loc, p.log
	return func() tea.Msg {
		if err := config.Update(path, map[string]any{"ui.locale": locale}); err != nil {
			log.Warn("save settings failed", zap.String("path", path), zap.Error(err))
			return StatusMsg{Text: loc.Tf(i18n.SettingsSaveFailed, err.Error()), IsErr: true}
		}
		return StatusMsg{Text: loc.T(i18n.SettingsSaved)}
	}
}

func (p *SettingsPage) purgeCache() tea.Cmd {
	exec, loc, log := p.exec, p.loc, p.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := exec.PurgeCache(ctx); err != nil {
			log.Warn("purge cache failed", zap.Error(err))
			return StatusMsg{Text: loc.Tf(i18n.SettingsPurgeFailed, err.Error()), IsErr: true}
		}
		return StatusMsg{Text: loc.T(i18n.SettingsPurged)}
	}
}

func (p *SettingsPage) View(width, height int) string {
	row := func(labelID, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(p.loc.T(labelID)), value)
	}
	lines := []string{
		titleStyle.Render(p.Title()),
		"",
		row(i18n.SettingsEndpoint, p.cfg.GraphQL.Endpoint),
		row(i18n.SettingsLocale, p.loc.Locale()+"  "+keyStyle.Render("[l]")),
		row(i18n.SettingsCachePolicy, string(p.exec.Policy())+"  "+keyStyle.Render("[x]")),
		row(i18n.SettingsCacheTTL, p.cfg.Cache.TTL.String()),
	}
	return fitHeight(strings.Join(lines, "\n"), height)
}
