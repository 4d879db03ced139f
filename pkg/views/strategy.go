package views

import (
	"context"
	"maps"
	"net/http"

	"github.com/dmitrymomot/reek/pkg/pages"
)

// Data is the template context of a page.
type Data map[string]any

// ContextBuilder adds entries to the template context.
type ContextBuilder interface {
	BuildContext(r *http.Request, m *pages.Match, data Data) error
}

// ContextFunc adapts a function to ContextBuilder.
type ContextFunc func(r *http.Request, m *pages.Match, data Data) error

func (f ContextFunc) BuildContext(r *http.Request, m *pages.Match, data Data) error {
	return f(r, m, data)
}

// TemplateResolver lists candidate template names, most specific first.
type TemplateResolver interface {
	TemplateNames(m *pages.Match) []string
}

// TemplatesFunc adapts a function to TemplateResolver.
type TemplatesFunc func(m *pages.Match) []string

func (f TemplatesFunc) TemplateNames(m *pages.Match) []string { return f(m) }

// PermissionChecker rejects requests by returning an error, typically
// wrapping ErrForbidden.
type PermissionChecker interface {
	CheckPermission(r *http.Request, m *pages.Match) error
}

// PermissionFunc adapts a function to PermissionChecker.
type PermissionFunc func(r *http.Request, m *pages.Match) error

func (f PermissionFunc) CheckPermission(r *http.Request, m *pages.Match) error { return f(r, m) }

// Renderer writes the response.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, templates []string, data Data) error
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(w http.ResponseWriter, r *http.Request, templates []string, data Data) error

func (f RenderFunc) Render(w http.ResponseWriter, r *http.Request, templates []string, data Data) error {
	return f(w, r, templates, data)
}

// PageContext puts the match, its page and route params into the context
// under "match", "page" and "params".
var PageContext ContextFunc = func(_ *http.Request, m *pages.Match, data Data) error {
	data["match"] = m
	data["page"] = m.Page
	params := maps.Clone(m.Defaults)
	if params == nil {
		params = map[string]string{}
	}
	maps.Copy(params, m.Params)
	data["params"] = params
	return nil
}

// StaticContext adds fixed values to every context.
func StaticContext(values Data) ContextBuilder {
	return ContextFunc(func(_ *http.Request, _ *pages.Match, data Data) error {
		maps.Copy(data, values)
		return nil
	})
}

// ViewTemplates resolves "pages/<label>/<route>.html" for application
// routes and "pages/<label>.html" otherwise, each followed by
// "pages/default.html".
var ViewTemplates TemplatesFunc = func(m *pages.Match) []string {
	label := ""
	if m.View != nil {
		label = m.View.Label()
	}
	names := make([]string, 0, 3)
	if m.Route != "" {
		names = append(names, "pages/"+label+"/"+m.Route+".html")
	}
	return append(names, "pages/"+label+".html", "pages/default.html")
}

// AllowAll is the default permission checker.
var AllowAll PermissionFunc = func(*http.Request, *pages.Match) error { return nil }

// RequireHeader allows requests that carry the header with a non-empty
// value.
func RequireHeader(name string) PermissionChecker {
	return PermissionFunc(func(r *http.Request, m *pages.Match) error {
		if r.Header.Get(name) == "" {
			return ErrForbidden
		}
		return nil
	})
}

type dataKey struct{}

// DataFrom returns the template context built for the current request.
// Renderers running inside a Handler can use it to reach values set by
// context builders without the data argument.
func DataFrom(ctx context.Context) Data {
	d, _ := ctx.Value(dataKey{}).(Data)
	return d
}
