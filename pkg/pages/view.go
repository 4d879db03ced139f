package pages

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/reek/pkg/urlconf"
)

// Handler serves a resolved page.
type Handler interface {
	ServePage(w http.ResponseWriter, r *http.Request, m *Match) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, m *Match) error

// ServePage calls f(w, r, m).
func (f HandlerFunc) ServePage(w http.ResponseWriter, r *http.Request, m *Match) error {
	return f(w, r, m)
}

// View is a page type. Its label is what pages store in ViewName.
type View interface {
	Handler

	Label() string
	// Name is the human readable name shown in page type choices.
	Name() string
	AllowsSubpages() bool
}

// Application is a View that owns a route table. Pages served by an
// application delegate the path below them to that table.
type Application interface {
	View

	URLs() *urlconf.Routes[Handler]
	// Namespace qualifies route names in the reverse index; empty keeps
	// them bare.
	Namespace() string
	AppName() string
}

// Match is the result of a successful resolution.
type Match struct {
	Handler Handler
	View    View
	// Params and Defaults come from the matched application route.
	Params   map[string]string
	Defaults map[string]string
	Page     Page
	// Slug is the last segment of the page path.
	Slug string
	// Route is the name of the matched application route.
	Route     string
	Namespace string
	AppName   string
	// SubpageSlugs are the request segments below the page.
	SubpageSlugs []string
}

// Param returns a route parameter, falling back to the route defaults.
func (m *Match) Param(name string) string {
	if v, ok := m.Params[name]; ok {
		return v
	}
	return m.Defaults[name]
}

// IsApplication reports whether the match was delegated into an
// application route table.
func (m *Match) IsApplication() bool {
	_, ok := m.View.(Application)
	return ok
}

type matchKey struct{}

// WithMatch stores m in ctx.
func WithMatch(ctx context.Context, m *Match) context.Context {
	return context.WithValue(ctx, matchKey{}, m)
}

// MatchFrom returns the match stored by WithMatch.
func MatchFrom(ctx context.Context) (*Match, bool) {
	m, ok := ctx.Value(matchKey{}).(*Match)
	return m, ok && m != nil
}
