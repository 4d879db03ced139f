package views

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/reek/pkg/markdown"
	"github.com/dmitrymomot/reek/pkg/pages"
)

// Content is a markdown document addressed by slug.
type Content struct {
	Slug  string `json:"slug"  yaml:"slug"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body"  yaml:"body"`
}

// ContentStore looks content up by slug. A missing slug is reported with
// ErrContentNotFound.
type ContentStore interface {
	ContentBySlug(ctx context.Context, slug string) (Content, error)
}

// NewContentView returns the "content_page" type. It loads the content
// whose slug equals the page slug and renders its markdown body.
func NewContentView(store ContentStore, conv *markdown.Converter, opts ...Option) *View {
	load := ContextFunc(func(r *http.Request, m *pages.Match, data Data) error {
		c, err := store.ContentBySlug(r.Context(), m.Slug)
		if errors.Is(err, ErrContentNotFound) {
			return fmt.Errorf("%w: %w: slug %q", pages.ErrNotFound, err, m.Slug)
		}
		if err != nil {
			return err
		}

		html, err := conv.Convert(c.Body)
		if err != nil {
			return err
		}
		data["content"] = c
		data["title"] = c.Title
		data["body"] = templ.Raw(html)
		data["html"] = template.HTML(html) //nolint:gosec // sanitized by the converter
		return nil
	})

	opts = append([]Option{WithContext(load)}, opts...)
	return NewView("content_page", "Content page", false, opts...)
}
