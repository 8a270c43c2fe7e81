package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyRegistryScopes(t *testing.T) {
	r := NewKeyRegistry(DefaultKeyBindings())

	if !r.IsAction(keyRunes("q"), "quit", scopeContacts) {
		t.Fatal("quit should apply on every page")
	}
	if r.IsAction(keyRunes("q"), "quit", scopeAddContact) {
		t.Fatal("quit should not apply inside the dialog")
	}
	if !r.IsAction(keyRunes("a"), "add-contact", scopeContacts) {
		t.Fatal("add-contact should apply on the contacts page")
	}
	if r.IsAction(keyRunes("a"), "add-contact", scopeSettings) {
		t.Fatal("add-contact should not apply on settings")
	}
	if !r.IsAction(keyType(tea.KeyShiftTab), "prev-field", scopeAddContact) {
		t.Fatal("shift+tab should move to the previous field")
	}
	if !r.IsAction(keyType(tea.KeyEnter), "submit", scopeGoto) {
		t.Fatal("enter should submit the goto prompt")
	}
}

func TestKeyRegistryBindingsForScope(t *testing.T) {
	r := NewKeyRegistry(DefaultKeyBindings())

	var actions []string
	for _, b := range r.BindingsForScope(scopeContacts) {
		actions = append(actions, b.Action)
	}
	want := []string{"quit", "toggle-drawer", "nav-1", "nav-2", "nav-3", "goto", "add-contact", "filter"}
	if len(actions) != len(want) {
		t.Fatalf("actions = %v, want %v", actions, want)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Fatalf("actions = %v, want %v", actions, want)
		}
	}
}

func TestScopeMatch(t *testing.T) {
	tests := []struct {
		scope  string
		scopes []string
		want   bool
	}{
		{"page:contacts", nil, true},
		{"page:contacts", []string{"page:*"}, true},
		{"dialog:add-contact", []string{"page:*"}, false},
		{"screen:goto", []string{"*"}, true},
		{"page:settings", []string{"page:contacts"}, false},
	}
	for _, tt := range tests {
		if got := scopeMatch(tt.scope, tt.scopes); got != tt.want {
			t.Errorf("scopeMatch(%q, %v) = %v, want %v", tt.scope, tt.scopes, got, tt.want)
		}
	}
}
