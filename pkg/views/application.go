package views

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/reek/pkg/pages"
	"github.com/dmitrymomot/reek/pkg/urlconf"
)

// AppOption configures an Application.
type AppOption func(*Application)

// WithNamespace qualifies the application's route names in the reverse
// index as "namespace:name".
func WithNamespace(ns string) AppOption {
	return func(a *Application) { a.namespace = ns }
}

// WithAppName overrides the application name, which defaults to the label.
func WithAppName(name string) AppOption {
	return func(a *Application) { a.appName = name }
}

// Application is a page type that owns a route table. The resolver
// dispatches requests below its pages to the matching route handler.
type Application struct {
	routes    *urlconf.Routes[pages.Handler]
	label     string
	name      string
	namespace string
	appName   string
}

// NewApplication returns an application page type.
func NewApplication(label, name string, routes *urlconf.Routes[pages.Handler], opts ...AppOption) *Application {
	a := &Application{routes: routes, label: label, name: name, appName: label}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Application) Label() string                        { return a.label }
func (a *Application) Name() string                         { return a.name }
func (a *Application) AllowsSubpages() bool                 { return true }
func (a *Application) URLs() *urlconf.Routes[pages.Handler] { return a.routes }
func (a *Application) Namespace() string                    { return a.namespace }
func (a *Application) AppName() string                      { return a.appName }

// ServePage runs the route handler chosen by the resolver. Matches that
// did not go through the route table are not found.
func (a *Application) ServePage(w http.ResponseWriter, r *http.Request, m *pages.Match) error {
	if m.Handler == nil || m.Route == "" {
		return fmt.Errorf("%w: application %q has no route for %q", pages.ErrNotFound, a.label, m.Page.URL())
	}
	if h, ok := m.Handler.(*Application); ok && h == a {
		return fmt.Errorf("%w: application %q dispatched to itself", pages.ErrNotFound, a.label)
	}
	return m.Handler.ServePage(w, r, m)
}
