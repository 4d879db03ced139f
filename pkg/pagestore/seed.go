package pagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/reek/pkg/markdown"
	"github.com/dmitrymomot/reek/pkg/pages"
	"github.com/dmitrymomot/reek/pkg/slug"
	"github.com/dmitrymomot/reek/pkg/views"
)

// ContentSaver is the write side of a content store.
type ContentSaver interface {
	SaveContent(ctx context.Context, c views.Content) error
}

// SeedPage is a page entry of a seed file. Path may be omitted when Parent
// and Title are set; the path is then Parent plus the slug of Title.
type SeedPage struct {
	Path   *string `yaml:"path"`
	Parent string  `yaml:"parent"`
	Title  string  `yaml:"title"`
	View   string  `yaml:"view"`
	Order  int     `yaml:"order"`
}

// SeedContent is a content entry of a seed file. A body with front matter
// may set the title there.
type SeedContent struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// SeedFile is the YAML seed format.
type SeedFile struct {
	Pages    []SeedPage    `yaml:"pages"`
	Contents []SeedContent `yaml:"contents"`
}

// SeedResult counts what Seed wrote.
type SeedResult struct {
	Created  int
	Updated  int
	Contents int
}

// Seed reads a SeedFile from r and applies it. Pages are matched by path:
// existing pages get the seed's view, title and order, others are created
// parents first. Contents are upserted by slug. contents may be nil when
// the file has no contents.
func Seed(ctx context.Context, repo pages.Repository, contents ContentSaver, r io.Reader) (SeedResult, error) {
	var file SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return SeedResult{}, errors.Join(ErrSeed, err)
	}

	var res SeedResult
	entries, err := seedPages(file.Pages)
	if err != nil {
		return res, err
	}
	for _, p := range entries {
		existing, err := repo.GetByPath(ctx, p.Path)
		switch {
		case err == nil:
			existing.ViewName = p.ViewName
			existing.Title = p.Title
			if p.Order != 0 {
				existing.Order = p.Order
			}
			if err := repo.Update(ctx, &existing); err != nil {
				return res, fmt.Errorf("seed page %q: %w", p.Path, err)
			}
			res.Updated++
		case errors.Is(err, pages.ErrPageNotFound):
			if err := repo.Create(ctx, &p); err != nil {
				return res, fmt.Errorf("seed page %q: %w", p.Path, err)
			}
			res.Created++
		default:
			return res, err
		}
	}

	if len(file.Contents) > 0 && contents == nil {
		return res, fmt.Errorf("%w: file has contents but no content store is configured", ErrSeed)
	}
	for _, sc := range file.Contents {
		c, err := seedContent(sc)
		if err != nil {
			return res, err
		}
		if err := contents.SaveContent(ctx, c); err != nil {
			return res, fmt.Errorf("seed content %q: %w", c.Slug, err)
		}
		res.Contents++
	}
	return res, nil
}

func seedPages(in []SeedPage) ([]pages.Page, error) {
	out := make([]pages.Page, 0, len(in))
	for i, sp := range in {
		if sp.View == "" {
			return nil, fmt.Errorf("%w: page %d has no view", ErrSeed, i)
		}

		var path string
		switch {
		case sp.Path != nil:
			path = pages.NormalizePath(*sp.Path)
		case sp.Title != "":
			path = strings.Trim(pages.NormalizePath(sp.Parent)+"/"+slug.Make(sp.Title), "/")
		default:
			return nil, fmt.Errorf("%w: page %d needs a path or a title", ErrSeed, i)
		}
		if err := pages.ValidatePath(path); err != nil {
			return nil, errors.Join(ErrSeed, err)
		}

		out = append(out, pages.Page{Path: path, ViewName: sp.View, Title: sp.Title, Order: sp.Order})
	}
	pages.SortTree(out)
	return out, nil
}

func seedContent(sc SeedContent) (views.Content, error) {
	if sc.Slug == "" {
		return views.Content{}, fmt.Errorf("%w: content without slug", ErrSeed)
	}

	doc, err := markdown.Parse([]byte(sc.Body))
	if err != nil {
		return views.Content{}, errors.Join(ErrSeed, fmt.Errorf("content %q: %w", sc.Slug, err))
	}
	title := sc.Title
	if title == "" {
		title = doc.String("title")
	}
	return views.Content{Slug: sc.Slug, Title: title, Body: doc.Body}, nil
}
