package pagestore_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reek/pkg/pages"
	"github.com/dmitrymomot/reek/pkg/pagestore"
	"github.com/dmitrymomot/reek/pkg/views"
)

const seedYAML = `
pages:
  - path: news
    title: News
    view: news
  - path: ""
    title: Home
    view: page
    order: 1
  - parent: news
    title: Über uns & Team
    view: content_page
contents:
  - slug: uber-uns-team
    body: |
      ---
      title: About the team
      ---
      # Team
  - slug: about
    title: About
    body: "# About"
`

func TestSeed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	conn := openDB(t)
	store := pagestore.New(conn)
	contents := pagestore.NewContents(conn)

	res, err := pagestore.Seed(ctx, store, contents, strings.NewReader(seedYAML))
	require.NoError(t, err)
	assert.Equal(t, pagestore.SeedResult{Created: 3, Contents: 2}, res)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "news", "news/uber-uns-team"}, paths(all))

	news, err := store.GetByPath(ctx, "news")
	require.NoError(t, err)
	assert.Equal(t, news.ID, all[2].ParentID)
	assert.Equal(t, "content_page", all[2].ViewName)

	team, err := contents.ContentBySlug(ctx, "uber-uns-team")
	require.NoError(t, err)
	assert.Equal(t, "About the team", team.Title)
	assert.Equal(t, "# Team\n", team.Body)

	t.Run("seeding again updates by path", func(t *testing.T) {
		again, err := pagestore.Seed(ctx, store, contents, strings.NewReader(strings.Replace(seedYAML, "title: News", "title: Latest", 1)))
		require.NoError(t, err)
		assert.Equal(t, pagestore.SeedResult{Updated: 3, Contents: 2}, again)

		news, err := store.GetByPath(ctx, "news")
		require.NoError(t, err)
		assert.Equal(t, "Latest", news.Title)

		list, err := contents.ListContents(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestSeed_MemoryStore(t *testing.T) {
	t.Parallel()

	store, err := pages.NewMemoryStore()
	require.NoError(t, err)

	res, err := pagestore.Seed(context.Background(), store, nil, strings.NewReader(`
pages:
  - path: /docs/
    view: page
  - parent: docs
    title: Getting Started
    view: page
`))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)

	_, err = store.GetByPath(context.Background(), "docs/getting-started")
	require.NoError(t, err)
}

func TestSeed_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{name: "syntax", yaml: "pages: ["},
		{name: "unknown field", yaml: "pages:\n  - path: a\n    view: page\n    colour: red\n"},
		{name: "no view", yaml: "pages:\n  - path: a\n"},
		{name: "no path or title", yaml: "pages:\n  - view: page\n"},
		{name: "bad path", yaml: "pages:\n  - path: a b\n    view: page\n"},
		{name: "content without slug", yaml: "contents:\n  - body: x\n"},
		{name: "contents without store", yaml: "contents:\n  - slug: x\n    body: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, err := pages.NewMemoryStore()
			require.NoError(t, err)

			var saver pagestore.ContentSaver
			if tt.name == "content without slug" {
				saver = pagestore.NewContents(openDB(t))
			}

			_, err = pagestore.Seed(context.Background(), store, saver, strings.NewReader(tt.yaml))
			require.ErrorIs(t, err, pagestore.ErrSeed)
		})
	}

	t.Run("empty file is a no-op", func(t *testing.T) {
		t.Parallel()

		store, err := pages.NewMemoryStore()
		require.NoError(t, err)
		res, err := pagestore.Seed(context.Background(), store, nil, strings.NewReader(""))
		require.NoError(t, err)
		assert.Zero(t, res)
	})
}

func TestContents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := pagestore.NewContents(openDB(t))

	_, err := c.ContentBySlug(ctx, "about")
	require.ErrorIs(t, err, views.ErrContentNotFound)

	require.NoError(t, c.SaveContent(ctx, views.Content{Slug: "about", Title: "About", Body: "v1"}))
	require.NoError(t, c.SaveContent(ctx, views.Content{Slug: "about", Title: "About us", Body: "v2"}))

	got, err := c.ContentBySlug(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, views.Content{Slug: "about", Title: "About us", Body: "v2"}, got)

	require.NoError(t, c.DeleteContent(ctx, "about"))
	require.NoError(t, c.DeleteContent(ctx, "about"))
	list, err := c.ListContents(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
