package pages_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reek/pkg/pages"
)

func TestMemoryStore_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("assigns ids, parents and order", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		news := &pages.Page{Path: "/news/", ViewName: "page", Title: "News"}
		require.NoError(t, s.Create(ctx, news))
		require.NotEmpty(t, news.ID)
		require.Equal(t, "news", news.Path)
		require.Empty(t, news.ParentID)
		require.Equal(t, 1, news.Order)

		a := &pages.Page{Path: "news/a", ViewName: "page"}
		b := &pages.Page{Path: "news/b", ViewName: "page"}
		require.NoError(t, s.Create(ctx, a))
		require.NoError(t, s.Create(ctx, b))
		require.Equal(t, news.ID, a.ParentID)
		require.Equal(t, 1, a.Order)
		require.Equal(t, 2, b.Order)
	})

	t.Run("rejects duplicate paths", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, page("a", "page"))
		require.ErrorIs(t, s.Create(ctx, &pages.Page{Path: "a"}), pages.ErrDuplicatePath)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		require.NoError(t, s.Create(ctx, &pages.Page{ID: "x", Path: "a"}))
		require.ErrorIs(t, s.Create(ctx, &pages.Page{ID: "x", Path: "b"}), pages.ErrDuplicateID)
	})

	t.Run("rejects invalid paths", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		require.ErrorIs(t, s.Create(ctx, &pages.Page{Path: "a/{b}"}), pages.ErrInvalidPath)
	})

	t.Run("validates explicit parents", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, page("a", "page"), page("b", "page"))
		a, err := s.GetByPath(ctx, "a")
		require.NoError(t, err)

		require.ErrorIs(t, s.Create(ctx, &pages.Page{Path: "b/x", ParentID: a.ID}), pages.ErrInvalidPath)
		require.ErrorIs(t, s.Create(ctx, &pages.Page{Path: "a/x", ParentID: "missing"}), pages.ErrPageNotFound)
		require.NoError(t, s.Create(ctx, &pages.Page{Path: "a/x", ParentID: a.ID}))
	})

	t.Run("publishes events", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		var got []pages.Event
		cancel := s.Subscribe(func(e pages.Event) { got = append(got, e) })

		require.NoError(t, s.Create(ctx, &pages.Page{Path: "a"}))
		cancel()
		require.NoError(t, s.Create(ctx, &pages.Page{Path: "b"}))

		require.Len(t, got, 1)
		require.Equal(t, pages.EventCreated, got[0].Kind)
		require.Equal(t, "a", got[0].Page.Path)
	})
}

func TestMemoryStore_Read(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, page("", "page"), page("a", "page"), page("a/b", "page"), page("c", "page"))

	t.Run("candidates are deepest first", func(t *testing.T) {
		t.Parallel()

		got, err := s.Candidates(ctx, []string{"", "a", "a/b", "a/b/x"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.Equal(t, "a/b", got[0].Path)
		require.Equal(t, "a", got[1].Path)
		require.Equal(t, "", got[2].Path)
	})

	t.Run("all is ordered by path", func(t *testing.T) {
		t.Parallel()

		all, err := s.All(ctx)
		require.NoError(t, err)
		paths := make([]string, len(all))
		for i, p := range all {
			paths[i] = p.Path
		}
		require.Equal(t, []string{"", "a", "a/b", "c"}, paths)
	})

	t.Run("get and children", func(t *testing.T) {
		t.Parallel()

		a, err := s.GetByPath(ctx, "/a/")
		require.NoError(t, err)

		got, err := s.Get(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, a, got)

		children, err := s.Children(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		require.Equal(t, "a/b", children[0].Path)

		top, err := s.Children(ctx, "")
		require.NoError(t, err)
		require.Len(t, top, 3)

		_, err = s.Get(ctx, "missing")
		require.ErrorIs(t, err, pages.ErrPageNotFound)
		_, err = s.GetByPath(ctx, "missing")
		require.ErrorIs(t, err, pages.ErrPageNotFound)
	})
}

func TestMemoryStore_Update(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("renames move descendants", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, page("app", "page"), page("app/x", "page"), page("app/x/y", "page"), page("apple", "page"))
		p, err := s.GetByPath(ctx, "app")
		require.NoError(t, err)

		var event pages.Event
		s.Subscribe(func(e pages.Event) { event = e })

		p.Path = "app2"
		require.NoError(t, s.Update(ctx, &p))

		for _, path := range []string{"app2", "app2/x", "app2/x/y", "apple"} {
			_, err := s.GetByPath(ctx, path)
			require.NoError(t, err, path)
		}
		for _, path := range []string{"app", "app/x", "app/x/y"} {
			_, err := s.GetByPath(ctx, path)
			require.ErrorIs(t, err, pages.ErrPageNotFound, path)
		}

		require.Equal(t, pages.EventUpdated, event.Kind)
		require.Equal(t, "app", event.OldPath)
		require.Equal(t, "app2", event.Page.Path)
	})

	t.Run("moves under a new parent", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, page("a", "page"), page("b", "page"))
		a, err := s.GetByPath(ctx, "a")
		require.NoError(t, err)
		b, err := s.GetByPath(ctx, "b")
		require.NoError(t, err)

		a.Path = "b/a"
		require.NoError(t, s.Update(ctx, &a))
		require.Equal(t, b.ID, a.ParentID)
	})

	t.Run("refuses clashes", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, page("a", "page"), page("a/x", "page"), page("b", "page"), page("b/x", "page"))
		a, err := s.GetByPath(ctx, "a")
		require.NoError(t, err)

		a.Path = "b"
		require.ErrorIs(t, s.Update(ctx, &a), pages.ErrDuplicatePath)

		_, err = s.GetByPath(ctx, "a/x")
		require.NoError(t, err, "failed moves leave the tree untouched")
	})

	t.Run("refuses moving below itself", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, page("a", "page"))
		a, err := s.GetByPath(ctx, "a")
		require.NoError(t, err)

		a.Path = "a/b"
		require.ErrorIs(t, s.Update(ctx, &a), pages.ErrInvalidPath)
	})

	t.Run("updates fields in place", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, page("a", "page"))
		a, err := s.GetByPath(ctx, "a")
		require.NoError(t, err)

		a.Title = "Renamed"
		a.ViewName = "section"
		require.NoError(t, s.Update(ctx, &a))

		got, err := s.Get(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, "Renamed", got.Title)
		require.Equal(t, "section", got.ViewName)
	})

	t.Run("unknown pages", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		require.ErrorIs(t, s.Update(ctx, &pages.Page{ID: "x", Path: "x"}), pages.ErrPageNotFound)
	})
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("removes descendants", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, page("", "page"), page("a", "page"), page("a/b", "page"), page("ab", "page"))
		a, err := s.GetByPath(ctx, "a")
		require.NoError(t, err)

		var events atomic.Int32
		s.Subscribe(func(pages.Event) { events.Add(1) })

		require.NoError(t, s.Delete(ctx, a.ID))
		require.Equal(t, int32(1), events.Load())

		all, err := s.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("root deletion keeps the tree", func(t *testing.T) {
		t.Parallel()

		s := newStore(t, page("", "page"), page("a", "page"))
		root, err := s.GetByPath(ctx, "")
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, root.ID))
		_, err = s.GetByPath(ctx, "a")
		require.NoError(t, err)
	})

	t.Run("unknown pages", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, newStore(t).Delete(ctx, "x"), pages.ErrPageNotFound)
	})
}

func TestMenu(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t,
		pages.Page{Path: "", Title: "Home", Order: 1},
		pages.Page{Path: "news", Title: "News", Order: 2},
		pages.Page{Path: "news/2024", Title: "2024"},
		pages.Page{Path: "news/2024/jan", Title: "January"},
		pages.Page{Path: "about", Title: "About", Order: 3},
	)

	items, err := pages.Menu(ctx, s, "", 2, "news/2024/jan")
	require.NoError(t, err)
	require.Len(t, items, 3)

	require.Equal(t, "Home", items[0].Page.Title)
	require.False(t, items[0].Active)
	require.Empty(t, items[0].Children)

	news := items[1]
	require.True(t, news.Active)
	require.Len(t, news.Children, 1)
	require.True(t, news.Children[0].Active)
	require.Empty(t, news.Children[0].Children, "levels bound the depth")

	require.False(t, items[2].Active)

	none, err := pages.Menu(ctx, s, "", 0, "")
	require.NoError(t, err)
	require.Empty(t, none)
}
