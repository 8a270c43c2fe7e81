package i18n

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestCatalogsCoverEveryMessage(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := b.Locales(); strings.Join(got, ",") != "de,en" {
		t.Fatalf("locales = %v", got)
	}
	for _, locale := range b.Locales() {
		c, _ := b.Catalog(locale)
		for _, id := range All {
			if strings.TrimSpace(c.Messages[id]) == "" {
				t.Errorf("%s: missing message %s", locale, id)
			}
		}
	}
}

func TestDefaultMessages(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	l := b.Localizer("en")
	tests := map[string]string{
		ContactsHeaderName:  "Name",
		ContactsHeaderOrgs:  "Organizations",
		ContactsHeaderEmail: "Email",
		ContactsAdd:         "Add contact",
		ContactsFilter:      "Filter list",
		OverviewHeader:      "This is Overview container !",
	}
	for id, want := range tests {
		if got := l.T(id); got != want {
			t.Errorf("T(%s) = %q, want %q", id, got, want)
		}
	}
}

func TestLocaleSwitchAndFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"l/en.yaml": {Data: []byte("locale: en\nmessages:\n  a: A\n  b: B\n")},
		"l/fr.yaml": {Data: []byte("locale: fr\nmessages:\n  a: Ah\n")},
	}
	b, err := LoadFS(fsys, "l")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	l := b.Localizer("fr_FR.UTF-8")
	if l.Locale() != "fr" {
		t.Fatalf("locale = %q, want fr", l.Locale())
	}
	if got := l.T("a"); got != "Ah" {
		t.Errorf("T(a) = %q", got)
	}
	if got := l.T("b"); got != "B" {
		t.Errorf("fallback T(b) = %q", got)
	}
	if got := l.T("missing"); got != "missing" {
		t.Errorf("T(missing) = %q", got)
	}
	if err := l.SetLocale("xx"); err == nil {
		t.Error("expected unknown locale error")
	}
	if l.Next() != "en" {
		t.Errorf("Next = %q, want en", l.Next())
	}
}

func TestUnknownLocaleFallsBackToDefault(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := b.Localizer("pt").Locale(); got != DefaultLocale {
		t.Fatalf("locale = %q", got)
	}
}

func TestLoadRequiresDefaultCatalog(t *testing.T) {
	fsys := fstest.MapFS{"l/de.yaml": {Data: []byte("locale: de\nmessages: {}\n")}}
	if _, err := LoadFS(fsys, "l"); err == nil {
		t.Fatal("expected error without en catalog")
	}
}

func TestTf(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := b.Localizer("de").Tf(NotFoundSuggest, "/contacts"); got != "Meinten Sie /contacts?" {
		t.Fatalf("Tf = %q", got)
	}
}
