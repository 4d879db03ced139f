package pagestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/dmitrymomot/reek/pkg/db"
	"github.com/dmitrymomot/reek/pkg/logger"
	"github.com/dmitrymomot/reek/pkg/pages"
)

const pageColumns = "id, COALESCE(parent_id, ''), path, view_name, title, sort_order"

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a pages.Repository on a SQL database.
type Store struct {
	pages.Hub
	conn    *db.DB
	logger  *slog.Logger
	origin  string
	channel string
}

var _ pages.Repository = (*Store)(nil)

// New returns a Store on conn. The schema must be migrated.
func New(conn *db.DB, opts ...Option) *Store {
	s := &Store{
		conn:    conn,
		logger:  logger.NewNope(),
		origin:  uuid.NewString(),
		channel: DefaultChannel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) q(query string) string {
	return s.conn.Dialect.Rebind(query)
}

func (s *Store) Candidates(ctx context.Context, paths []string) ([]pages.Page, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	args := make([]any, len(paths))
	for i, p := range paths {
		args[i] = p
	}
	query := "SELECT " + pageColumns + " FROM pages WHERE path IN (" +
		strings.TrimSuffix(strings.Repeat("?,", len(paths)), ",") + ")"

	found, err := s.list(ctx, s.conn, query, args...)
	if err != nil {
		return nil, err
	}
	pages.SortLongestFirst(found)
	return found, nil
}

func (s *Store) All(ctx context.Context) ([]pages.Page, error) {
	all, err := s.list(ctx, s.conn, "SELECT "+pageColumns+" FROM pages")
	if err != nil {
		return nil, err
	}
	// Byte order of paths; collations differ between backends.
	pages.SortTree(all)
	return all, nil
}

func (s *Store) Get(ctx context.Context, id string) (pages.Page, error) {
	return s.get(ctx, s.conn, "id", id)
}

func (s *Store) GetByPath(ctx context.Context, path string) (pages.Page, error) {
	return s.get(ctx, s.conn, "path", pages.NormalizePath(path))
}

func (s *Store) Children(ctx context.Context, parentID string) ([]pages.Page, error) {
	var (
		children []pages.Page
		err      error
	)
	if parentID == "" {
		children, err = s.list(ctx, s.conn, "SELECT "+pageColumns+" FROM pages WHERE parent_id IS NULL")
	} else {
		children, err = s.list(ctx, s.conn, "SELECT "+pageColumns+" FROM pages WHERE parent_id = ?", parentID)
	}
	if err != nil {
		return nil, err
	}
	pages.SortSiblings(children)
	return children, nil
}

func (s *Store) Create(ctx context.Context, p *pages.Page) error {
	p.Path = pages.NormalizePath(p.Path)
	if err := pages.ValidatePath(p.Path); err != nil {
		return err
	}

	err := db.WithTx(ctx, s.conn.DB, func(tx *sql.Tx) error {
		if err := s.ensureFree(ctx, tx, p.Path, ""); err != nil {
			return err
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		} else if _, err := s.get(ctx, tx, "id", p.ID); err == nil {
			return fmt.Errorf("%w: %q", pages.ErrDuplicateID, p.ID)
		} else if !errors.Is(err, pages.ErrPageNotFound) {
			return err
		}
		if err := s.linkParent(ctx, tx, p); err != nil {
			return err
		}
		if p.Order == 0 {
			order, err := s.nextOrder(ctx, tx, p.ParentID)
			if err != nil {
				return err
			}
			p.Order = order
		}

		_, err := tx.ExecContext(ctx, s.q(
			"INSERT INTO pages (id, parent_id, path, view_name, title, sort_order) VALUES (?, ?, ?, ?, ?, ?)"),
			p.ID, nullable(p.ParentID), p.Path, p.ViewName, p.Title, p.Order,
		)
		return s.mapErr(err, p.Path)
	})
	if err != nil {
		return err
	}

	s.emit(ctx, pages.Event{Kind: pages.EventCreated, Page: *p})
	return nil
}

func (s *Store) Update(ctx context.Context, p *pages.Page) error {
	p.Path = pages.NormalizePath(p.Path)

	var old pages.Page
	err := db.WithTx(ctx, s.conn.DB, func(tx *sql.Tx) error {
		var err error
		old, err = s.get(ctx, tx, "id", p.ID)
		if err != nil {
			return err
		}
		if err := pages.CheckMove(old.Path, p.Path); err != nil {
			return err
		}

		moved := old.Path != p.Path
		if moved {
			p.ParentID = ""
			if err := s.ensureFree(ctx, tx, p.Path, old.Path); err != nil {
				return err
			}
		}
		if err := s.linkParent(ctx, tx, p); err != nil {
			return err
		}

		if moved {
			if err := s.move(ctx, tx, old.Path, p.Path); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, s.q(
			"UPDATE pages SET parent_id = ?, path = ?, view_name = ?, title = ?, sort_order = ? WHERE id = ?"),
			nullable(p.ParentID), p.Path, p.ViewName, p.Title, p.Order, p.ID,
		)
		return s.mapErr(err, p.Path)
	})
	if err != nil {
		return err
	}

	s.emit(ctx, pages.Event{Kind: pages.EventUpdated, Page: *p, OldPath: old.Path})
	return nil
}

// Delete removes the page and its descendants. Deleting the root page
// removes only the root.
func (s *Store) Delete(ctx context.Context, id string) error {
	var p pages.Page
	err := db.WithTx(ctx, s.conn.DB, func(tx *sql.Tx) error {
		var err error
		p, err = s.get(ctx, tx, "id", id)
		if err != nil {
			return err
		}
		if p.Path != "" {
			prefix := p.Path + "/"
			if _, err := tx.ExecContext(ctx, s.q("DELETE FROM pages WHERE substr(path, 1, ?) = ?"),
				utf8.RuneCountInString(prefix), prefix); err != nil {
				return errors.Join(pages.ErrStore, err)
			}
		}
		if _, err := tx.ExecContext(ctx, s.q("DELETE FROM pages WHERE id = ?"), p.ID); err != nil {
			return errors.Join(pages.ErrStore, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, pages.Event{Kind: pages.EventDeleted, Page: p})
	return nil
}

// move rewrites the paths of the page at oldPath and its descendants.
// Paths are parked under a "#" prefix first, which valid paths never
// carry, so the unique index holds after every single row update. The
// page row itself is finalised by the caller.
func (s *Store) move(ctx context.Context, tx *sql.Tx, oldPath, newPath string) error {
	prefix := oldPath + "/"
	n := utf8.RuneCountInString(prefix)
	subtree, err := s.list(ctx, tx, "SELECT "+pageColumns+" FROM pages WHERE substr(path, 1, ?) = ?", n, prefix)
	if err != nil {
		return err
	}

	for _, q := range subtree {
		if err := s.ensureFree(ctx, tx, pages.Rebase(q.Path, oldPath, newPath), oldPath); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, s.q("UPDATE pages SET path = '#' || path WHERE path = ? OR substr(path, 1, ?) = ?"),
		oldPath, n, prefix); err != nil {
		return errors.Join(pages.ErrStore, err)
	}
	for _, q := range subtree {
		target := pages.Rebase(q.Path, oldPath, newPath)
		if _, err := tx.ExecContext(ctx, s.q("UPDATE pages SET path = ? WHERE id = ?"), target, q.ID); err != nil {
			return s.mapErr(err, target)
		}
	}
	return nil
}

// ensureFree reports ErrDuplicatePath when path is taken by a page outside
// the subtree at movingFrom.
func (s *Store) ensureFree(ctx context.Context, tx querier, path, movingFrom string) error {
	p, err := s.get(ctx, tx, "path", path)
	switch {
	case errors.Is(err, pages.ErrPageNotFound):
		return nil
	case err != nil:
		return err
	case movingFrom != "" && (p.Path == movingFrom || pages.IsDescendant(p.Path, movingFrom)):
		return nil
	default:
		return fmt.Errorf("%w: %q", pages.ErrDuplicatePath, path)
	}
}

func (s *Store) linkParent(ctx context.Context, tx querier, p *pages.Page) error {
	parentPath, hasParent := pages.ParentPath(p.Path)
	if p.ParentID == "" {
		if !hasParent {
			return nil
		}
		parent, err := s.get(ctx, tx, "path", parentPath)
		if errors.Is(err, pages.ErrPageNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		p.ParentID = parent.ID
		return nil
	}

	parent, err := s.get(ctx, tx, "id", p.ParentID)
	if errors.Is(err, pages.ErrPageNotFound) {
		return fmt.Errorf("%w: parent %q", pages.ErrPageNotFound, p.ParentID)
	}
	if err != nil {
		return err
	}
	if !hasParent || parent.Path != parentPath {
		return fmt.Errorf("%w: %q is not a child of %q", pages.ErrInvalidPath, p.Path, parent.Path)
	}
	return nil
}

func (s *Store) nextOrder(ctx context.Context, tx querier, parentID string) (int, error) {
	var (
		n   int
		row *sql.Row
	)
	if parentID == "" {
		row = tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(sort_order), 0) FROM pages WHERE parent_id IS NULL")
	} else {
		row = tx.QueryRowContext(ctx, s.q("SELECT COALESCE(MAX(sort_order), 0) FROM pages WHERE parent_id = ?"), parentID)
	}
	if err := row.Scan(&n); err != nil {
		return 0, errors.Join(pages.ErrStore, err)
	}
	return n + 1, nil
}

func (s *Store) get(ctx context.Context, qr querier, column, value string) (pages.Page, error) {
	var p pages.Page
	err := qr.QueryRowContext(ctx, s.q("SELECT "+pageColumns+" FROM pages WHERE "+column+" = ?"), value).
		Scan(&p.ID, &p.ParentID, &p.Path, &p.ViewName, &p.Title, &p.Order)
	if errors.Is(err, sql.ErrNoRows) {
		return pages.Page{}, fmt.Errorf("%w: %s %q", pages.ErrPageNotFound, column, value)
	}
	if err != nil {
		return pages.Page{}, errors.Join(pages.ErrStore, err)
	}
	return p, nil
}

func (s *Store) list(ctx context.Context, qr querier, query string, args ...any) ([]pages.Page, error) {
	rows, err := qr.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, errors.Join(pages.ErrStore, err)
	}
	defer rows.Close()

	var out []pages.Page
	for rows.Next() {
		var p pages.Page
		if err := rows.Scan(&p.ID, &p.ParentID, &p.Path, &p.ViewName, &p.Title, &p.Order); err != nil {
			return nil, errors.Join(pages.ErrStore, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(pages.ErrStore, err)
	}
	return out, nil
}

// mapErr turns unique violations into ErrDuplicatePath.
func (s *Store) mapErr(err error, path string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %q", pages.ErrDuplicatePath, path)
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) &&
		(liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY) {
		return fmt.Errorf("%w: %q", pages.ErrDuplicatePath, path)
	}
	return errors.Join(pages.ErrStore, err)
}

func nullable(id string) any {
	if id == "" {
		return nil
	}
	return id
}
