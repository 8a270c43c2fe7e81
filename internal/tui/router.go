package tui

import (
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
)

// Routes served by the shell.
const (
	RouteOverview = "/"
	RouteContacts = "/contacts"
	RouteSettings = "/settings"
)

// maxSuggestDistance bounds how far a typo may be from a known route.
const maxSuggestDistance = 3

// Page is a routed view. Mount is called when the page becomes active and
// Unmount when it is left; a page must not change state after Unmount.
type Page interface {
	Route() string
	Title() string
	Scope() string
	Mount() tea.Cmd
	Unmount()
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
}

// InputCapturer is implemented by pages that sometimes need every key, for
// example while a text field has focus.
type InputCapturer interface {
	CapturesInput() bool
}

// Resizer is implemented by pages that lay out once per size change rather
// than on every frame.
type Resizer interface {
	SetSize(width, height int)
}

// Link is a drawer entry.
type Link struct {
	Route   string
	LabelID string
}

// Router maps paths to pages. Unknown paths get a page from notFound.
type Router struct {
	pages    map[string]Page
	links    []Link
	notFound func(path, suggestion string) Page
}

func NewRouter(notFound func(path, suggestion string) Page) *Router {
	return &Router{pages: map[string]Page{}, notFound: notFound}
}

// Register adds page and, when labelID is set, a drawer link to it.
func (r *Router) Register(page Page, labelID string) {
	r.pages[page.Route()] = page
	if labelID != "" {
		r.links = append(r.links, Link{Route: page.Route(), LabelID: labelID})
	}
}

func (r *Router) Links() []Link { return r.links }

func (r *Router) Routes() []string {
	out := make([]string, 0, len(r.links))
	for _, l := range r.links {
		out = append(out, l.Route)
	}
	return out
}

// Resolve returns the page for path and the cleaned path.
func (r *Router) Resolve(path string) (Page, string) {
	path = CleanPath(path)
	if p, ok := r.pages[path]; ok {
		return p, path
	}
	suggestion, _ := Suggest(path, r.Routes())
	return r.notFound(path, suggestion), path
}

// CleanPath trims whitespace and trailing slashes and ensures a leading slash.
func CleanPath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimRight(path, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Suggest returns the known route closest to path when it is within
// maxSuggestDistance edits. Ties go to the earlier route.
func Suggest(path string, routes []string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	lower := strings.ToLower(path)
	for _, r := range routes {
		if d := levenshtein.ComputeDistance(lower, r); d < bestDist {
			best, bestDist = r, d
		}
	}
	if best == "" || best == path {
		return "", false
	}
	return best, true
}
