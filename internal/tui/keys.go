package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Scopes used by the shell, pages and screens.
const (
	scopePages      = "page:*"
	scopeOverview   = "page:overview"
	scopeContacts   = "page:contacts"
	scopeSettings   = "page:settings"
	scopeNotFound   = "page:not-found"
	scopeAddContact = "dialog:add-contact"
	scopeGoto       = "screen:goto"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: []string{scopePages}},
		{Keys: []string{"m"}, Action: "toggle-drawer", Description: "menu", Scopes: []string{scopePages}},
		{Keys: []string{"1"}, Action: "nav-1", Description: "overview", Scopes: []string{scopePages}},
		{Keys: []string{"2"}, Action: "nav-2", Description: "contacts", Scopes: []string{scopePages}},
		{Keys: []string{"3"}, Action: "nav-3", Description: "settings", Scopes: []string{scopePages}},
		{Keys: []string{"g"}, Action: "goto", Description: "go to", Scopes: []string{scopePages}},
		{Keys: []string{"a"}, Action: "add-contact", Description: "add contact", Scopes: []string{scopeContacts}},
		{Keys: []string{"f"}, Action: "filter", Description: "filter list", Scopes: []string{scopeContacts}},
		{Keys: []string{"l"}, Action: "cycle-locale", Description: "language", Scopes: []string{scopeSettings}},
		{Keys: []string{"x"}, Action: "purge-cache", Description: "clear cache", Scopes: []string{scopeSettings}},
		{Keys: []string{"tab", "down"}, Action: "next-field", Description: "next field", Scopes: []string{scopeAddContact}},
		{Keys: []string{"shift+tab", "up"}, Action: "prev-field", Description: "prev field", Scopes: []string{scopeAddContact}},
		{Keys: []string{"enter"}, Action: "submit", Description: "confirm", Scopes: []string{scopeAddContact, scopeGoto}},
		{Keys: []string{"esc"}, Action: "close", Description: "cancel", Scopes: []string{scopeAddContact, scopeGoto}},
	}
}

func (r *KeyRegistry) Register(binding KeyBinding) {
	r.bindings = append(r.bindings, binding)
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return true
			}
		}
	}
	return false
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// scopeMatch treats a trailing "*" as a prefix wildcard.
func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
		if prefix, ok := strings.CutSuffix(s, "*"); ok && strings.HasPrefix(scope, prefix) {
			return true
		}
	}
	return false
}
