package urlconf_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reek/pkg/urlconf"
)

func newsRoutes() *urlconf.Routes[string] {
	return urlconf.New[string]().
		Handle("/", "index", "index").
		Handle("/{slug}/", "detail", "detail").
		Handle("/archive/{year:[0-9]{4}}/", "archive", "archive").
		Handle("/item/{id}/", "item", "item", urlconf.WithDefaults(map[string]string{"kind": "item"}))
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("matches under a prefix", func(t *testing.T) {
		t.Parallel()

		r, err := urlconf.NewResolver("app", newsRoutes())
		require.NoError(t, err)
		require.Equal(t, "app", r.Prefix())

		m, err := r.Resolve("app/item/42/")
		require.NoError(t, err)
		require.Equal(t, "item", m.Route.Name)
		require.Equal(t, "item", m.Route.Handler)
		require.Equal(t, map[string]string{"id": "42"}, m.Params)
		require.Equal(t, "item", m.Route.Defaults["kind"])
		require.Equal(t, "/item/42/", m.Path)
	})

	t.Run("accepts a leading slash", func(t *testing.T) {
		t.Parallel()

		r, err := urlconf.NewResolver("app", newsRoutes())
		require.NoError(t, err)

		m, err := r.Resolve("/app/")
		require.NoError(t, err)
		require.Equal(t, "index", m.Route.Name)
		require.Empty(t, m.Params)
	})

	t.Run("matches at the root prefix", func(t *testing.T) {
		t.Parallel()

		r, err := urlconf.NewResolver("", newsRoutes())
		require.NoError(t, err)

		m, err := r.Resolve("hello/")
		require.NoError(t, err)
		require.Equal(t, "detail", m.Route.Name)
		require.Equal(t, "hello", m.Params["slug"])
	})

	t.Run("static routes win over parameters", func(t *testing.T) {
		t.Parallel()

		routes := urlconf.New[string]().
			Handle("/{slug}/", "detail", "detail").
			Handle("/feed/", "feed", "feed")

		r, err := urlconf.NewResolver("blog", routes)
		require.NoError(t, err)

		m, err := r.Resolve("blog/feed/")
		require.NoError(t, err)
		require.Equal(t, "feed", m.Route.Name)
	})

	t.Run("applies regexp constraints", func(t *testing.T) {
		t.Parallel()

		r, err := urlconf.NewResolver("app", newsRoutes())
		require.NoError(t, err)

		m, err := r.Resolve("app/archive/2024/")
		require.NoError(t, err)
		require.Equal(t, "archive", m.Route.Name)
		require.Equal(t, "2024", m.Params["year"])

		_, err = r.Resolve("app/archive/24/")
		require.ErrorIs(t, err, urlconf.ErrNoMatch)
	})

	t.Run("reports tried patterns", func(t *testing.T) {
		t.Parallel()

		r, err := urlconf.NewResolver("app", newsRoutes())
		require.NoError(t, err)

		_, err = r.Resolve("app/a/b/c/")
		require.ErrorIs(t, err, urlconf.ErrNoMatch)

		var nm *urlconf.NoMatchError
		require.True(t, errors.As(err, &nm))
		require.Equal(t, "app/a/b/c/", nm.Path)
		require.Equal(t, []string{
			"app/",
			"app/{slug}/",
			"app/archive/{year:[0-9]{4}}/",
			"app/item/{id}/",
		}, nm.Tried)
	})

	t.Run("rejects paths outside the prefix", func(t *testing.T) {
		t.Parallel()

		r, err := urlconf.NewResolver("app", newsRoutes())
		require.NoError(t, err)

		_, err = r.Resolve("application/")
		require.ErrorIs(t, err, urlconf.ErrNoMatch)
	})

	t.Run("refuses a table with errors", func(t *testing.T) {
		t.Parallel()

		_, err := urlconf.NewResolver("app", urlconf.New[string]().Handle("x", "x", "x"))
		require.ErrorIs(t, err, urlconf.ErrInvalidPattern)
	})
}

func TestJoin(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", urlconf.Join("", "/"))
	require.Equal(t, "{slug}/", urlconf.Join("", "/{slug}/"))
	require.Equal(t, "blog/", urlconf.Join("blog", "/"))
	require.Equal(t, "blog/{slug}/", urlconf.Join("/blog/", "/{slug}/"))
}
