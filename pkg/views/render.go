package views

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"sync"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/reek/pkg/pages"
)

// Document renders a minimal HTML5 document. Body may be a templ.Component
// or a string, which is escaped.
func Document(title string, body any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>"+
			templ.EscapeString(title)+"</title></head><body>\n<h1>"+templ.EscapeString(title)+"</h1>\n"); err != nil {
			return err
		}
		switch b := body.(type) {
		case templ.Component:
			if err := b.Render(ctx, w); err != nil {
				return err
			}
		case string:
			if _, err := io.WriteString(w, "<p>"+templ.EscapeString(b)+"</p>"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n</body></html>\n")
		return err
	})
}

// DocumentRenderer renders the "title" and "body" context entries with
// Document, falling back to the page title. Template names are ignored.
type DocumentRenderer struct{}

func (DocumentRenderer) Render(w http.ResponseWriter, r *http.Request, _ []string, data Data) error {
	title, _ := data["title"].(string)
	if p, ok := data["page"].(pages.Page); ok && title == "" {
		title = p.Title
	}
	return renderComponent(w, r, Document(title, data["body"]))
}

// ComponentRenderer renders a templ component built from the context.
type ComponentRenderer func(data Data) templ.Component

func (f ComponentRenderer) Render(w http.ResponseWriter, r *http.Request, _ []string, data Data) error {
	return renderComponent(w, r, f(data))
}

func renderComponent(w http.ResponseWriter, r *http.Request, c templ.Component) error {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}

// TemplateRenderer executes the first template name found in an fs.FS.
// Parsed templates are cached.
type TemplateRenderer struct {
	fsys  fs.FS
	funcs template.FuncMap

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// NewTemplateRenderer returns a renderer over fsys.
func NewTemplateRenderer(fsys fs.FS, funcs template.FuncMap) *TemplateRenderer {
	return &TemplateRenderer{fsys: fsys, funcs: funcs, cache: make(map[string]*template.Template)}
}

func (t *TemplateRenderer) Render(w http.ResponseWriter, _ *http.Request, names []string, data Data) error {
	tmpl, err := t.lookup(names)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRender, tmpl.Name(), err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = buf.WriteTo(w)
	return err
}

func (t *TemplateRenderer) lookup(names []string) (*template.Template, error) {
	for _, name := range names {
		t.mu.RLock()
		tmpl, ok := t.cache[name]
		t.mu.RUnlock()
		if ok {
			return tmpl, nil
		}

		content, err := fs.ReadFile(t.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRender, name, err)
		}

		tmpl, err = template.New(name).Funcs(t.funcs).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRender, name, err)
		}

		t.mu.Lock()
		t.cache[name] = tmpl
		t.mu.Unlock()
		return tmpl, nil
	}
	return nil, fmt.Errorf("%w: tried %v", ErrNoTemplate, names)
}
