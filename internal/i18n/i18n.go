// Package i18n serves the static message catalogs of the terminal UI.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when a message is missing from the active catalog.
const DefaultLocale = "en"

//go:embed locales/*.yaml
var localeFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Name     string            `yaml:"name"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog is one locale's messages.
type Catalog struct {
	Locale   string
	Name     string
	Messages map[string]string
}

// Bundle holds every loaded catalog.
type Bundle struct {
	catalogs map[string]Catalog
}

// Load parses the embedded catalogs.
func Load() (*Bundle, error) {
	return LoadFS(localeFS, "locales")
}

// LoadFS parses every *.yaml catalog in dir of fsys.
func LoadFS(fsys fs.FS, dir string) (*Bundle, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	b := &Bundle{catalogs: map[string]Catalog{}}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		if f.Locale == "" {
			f.Locale = strings.TrimSuffix(e.Name(), ".yaml")
		}
		b.catalogs[f.Locale] = Catalog{Locale: f.Locale, Name: f.Name, Messages: f.Messages}
	}
	if _, ok := b.catalogs[DefaultLocale]; !ok {
		return nil, fmt.Errorf("missing %s catalog", DefaultLocale)
	}
	return b, nil
}

// Locales returns the loaded locale codes, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.catalogs))
	for l := range b.catalogs {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// Catalog returns the catalog for locale.
func (b *Bundle) Catalog(locale string) (Catalog, bool) {
	c, ok := b.catalogs[locale]
	return c, ok
}

// Localizer translates message ids for one active locale.
type Localizer struct {
	bundle *Bundle
	locale string
}

// Localizer returns a localizer for locale, falling back to DefaultLocale
// when locale is unknown.
func (b *Bundle) Localizer(locale string) *Localizer {
	l := &Localizer{bundle: b, locale: DefaultLocale}
	_ = l.SetLocale(locale)
	return l
}

// Locale returns the active locale.
func (l *Localizer) Locale() string { return l.locale }

// SetLocale switches the active locale.
func (l *Localizer) SetLocale(locale string) error {
	locale = normalize(locale)
	if _, ok := l.bundle.catalogs[locale]; !ok {
		return fmt.Errorf("unknown locale %q", locale)
	}
	l.locale = locale
	return nil
}

// Next returns the locale after the active one, wrapping around.
func (l *Localizer) Next() string {
	locales := l.bundle.Locales()
	i := slices.Index(locales, l.locale)
	return locales[(i+1)%len(locales)]
}

// T returns the message for id. Missing messages fall back to the default
// catalog and then to the id itself.
func (l *Localizer) T(id string) string {
	if msg, ok := l.bundle.catalogs[l.locale].Messages[id]; ok {
		return msg
	}
	if msg, ok := l.bundle.catalogs[DefaultLocale].Messages[id]; ok {
		return msg
	}
	return id
}

// Tf formats the message for id with args.
func (l *Localizer) Tf(id string, args ...any) string {
	return fmt.Sprintf(l.T(id), args...)
}

// normalize maps "de_DE.UTF-8" and "de-DE" to "de".
func normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "_-."); i > 0 {
		locale = locale[:i]
	}
	return locale
}
