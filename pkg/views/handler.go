package views

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/reek/pkg/pages"
)

// Option configures a Handler.
type Option func(*Handler)

// WithContext appends context builders. Builders run in order after the
// built-in PageContext.
func WithContext(builders ...ContextBuilder) Option {
	return func(h *Handler) { h.builders = append(h.builders, builders...) }
}

// WithTemplates sets the template resolver.
func WithTemplates(t TemplateResolver) Option {
	return func(h *Handler) { h.templates = t }
}

// WithTemplateNames resolves to a fixed list of names.
func WithTemplateNames(names ...string) Option {
	return WithTemplates(TemplatesFunc(func(*pages.Match) []string { return names }))
}

// WithPermission sets the permission checker.
func WithPermission(p PermissionChecker) Option {
	return func(h *Handler) { h.permission = p }
}

// WithRenderer sets the renderer.
func WithRenderer(r Renderer) Option {
	return func(h *Handler) { h.renderer = r }
}

// Handler serves a page by running its strategies in order.
type Handler struct {
	templates  TemplateResolver
	permission PermissionChecker
	renderer   Renderer
	builders   []ContextBuilder
}

// New returns a Handler. Unset strategies default to AllowAll,
// ViewTemplates and DocumentRenderer.
func New(opts ...Option) *Handler {
	h := &Handler{
		templates:  ViewTemplates,
		permission: AllowAll,
		renderer:   DocumentRenderer{},
		builders:   []ContextBuilder{PageContext},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request, m *pages.Match) error {
	if err := h.permission.CheckPermission(r, m); err != nil {
		return err
	}

	data := Data{}
	for _, b := range h.builders {
		if err := b.BuildContext(r, m, data); err != nil {
			return err
		}
	}

	r = r.WithContext(context.WithValue(r.Context(), dataKey{}, data))
	return h.renderer.Render(w, r, h.templates.TemplateNames(m), data)
}

// View is a registered page type backed by a Handler.
type View struct {
	*Handler
	label    string
	name     string
	subpages bool
}

// NewView returns a page type with the given label and display name.
func NewView(label, name string, subpages bool, opts ...Option) *View {
	return &View{Handler: New(opts...), label: label, name: name, subpages: subpages}
}

// NewPageView returns the "page" type: a page rendered from its own data
// that does not accept subpages.
func NewPageView(opts ...Option) *View {
	return NewView("page", "Simple page", false, opts...)
}

func (v *View) Label() string        { return v.label }
func (v *View) Name() string         { return v.name }
func (v *View) AllowsSubpages() bool { return v.subpages }
