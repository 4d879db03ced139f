package pagestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrymomot/reek/pkg/db"
	"github.com/dmitrymomot/reek/pkg/pages"
	"github.com/dmitrymomot/reek/pkg/views"
)

// Contents stores markdown documents by slug.
type Contents struct {
	conn *db.DB
}

var _ views.ContentStore = (*Contents)(nil)

// NewContents returns a content store on conn.
func NewContents(conn *db.DB) *Contents {
	return &Contents{conn: conn}
}

func (c *Contents) ContentBySlug(ctx context.Context, slug string) (views.Content, error) {
	var v views.Content
	err := c.conn.QueryRowContext(ctx, c.conn.Dialect.Rebind("SELECT slug, title, body FROM contents WHERE slug = ?"), slug).
		Scan(&v.Slug, &v.Title, &v.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return views.Content{}, fmt.Errorf("%w: %q", views.ErrContentNotFound, slug)
	}
	if err != nil {
		return views.Content{}, errors.Join(pages.ErrStore, err)
	}
	return v, nil
}

// SaveContent inserts v or replaces the content with the same slug.
func (c *Contents) SaveContent(ctx context.Context, v views.Content) error {
	_, err := c.conn.ExecContext(ctx, c.conn.Dialect.Rebind(
		`INSERT INTO contents (slug, title, body) VALUES (?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET title = excluded.title, body = excluded.body`),
		v.Slug, v.Title, v.Body,
	)
	if err != nil {
		return errors.Join(pages.ErrStore, err)
	}
	return nil
}

// DeleteContent removes the content with slug. Unknown slugs are not an
// error.
func (c *Contents) DeleteContent(ctx context.Context, slug string) error {
	if _, err := c.conn.ExecContext(ctx, c.conn.Dialect.Rebind("DELETE FROM contents WHERE slug = ?"), slug); err != nil {
		return errors.Join(pages.ErrStore, err)
	}
	return nil
}

// ListContents returns all contents ordered by slug.
func (c *Contents) ListContents(ctx context.Context) ([]views.Content, error) {
	rows, err := c.conn.QueryContext(ctx, "SELECT slug, title, body FROM contents ORDER BY slug")
	if err != nil {
		return nil, errors.Join(pages.ErrStore, err)
	}
	defer rows.Close()

	var out []views.Content
	for rows.Next() {
		var v views.Content
		if err := rows.Scan(&v.Slug, &v.Title, &v.Body); err != nil {
			return nil, errors.Join(pages.ErrStore, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(pages.ErrStore, err)
	}
	return out, nil
}
