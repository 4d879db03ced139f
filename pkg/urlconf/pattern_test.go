package urlconf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reek/pkg/urlconf"
)

func TestParsePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		params  []string
		wantErr bool
	}{
		{name: "static", pattern: "/about/", params: []string{}},
		{name: "single param", pattern: "/item/{id}/", params: []string{"id"}},
		{name: "regexp with braces", pattern: "/archive/{year:[0-9]{4}}/{month:[0-9]{2}}/", params: []string{"year", "month"}},
		{name: "wildcard", pattern: "/files/*", params: []string{"*"}},
		{name: "unbalanced open", pattern: "/item/{id/", wantErr: true},
		{name: "unbalanced close", pattern: "/item/id}/", wantErr: true},
		{name: "empty name", pattern: "/item/{}/", wantErr: true},
		{name: "empty expression", pattern: "/item/{id:}/", wantErr: true},
		{name: "bad regexp", pattern: "/item/{id:[0-9}/", wantErr: true},
		{name: "repeated param", pattern: "/{id}/{id}/", wantErr: true},
		{name: "wildcard not last", pattern: "/files/*/x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := urlconf.ParsePattern(tt.pattern)
			if tt.wantErr {
				require.ErrorIs(t, err, urlconf.ErrInvalidPattern)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.pattern, p.String())
			require.Equal(t, tt.params, p.Params())
		})
	}
}

func TestPattern_Format(t *testing.T) {
	t.Parallel()

	t.Run("substitutes parameters", func(t *testing.T) {
		t.Parallel()

		p, err := urlconf.ParsePattern("app/item/{id}/")
		require.NoError(t, err)

		got, err := p.Format(map[string]string{"id": "42"})
		require.NoError(t, err)
		require.Equal(t, "app/item/42/", got)
	})

	t.Run("validates regexp constraints", func(t *testing.T) {
		t.Parallel()

		p, err := urlconf.ParsePattern("/archive/{year:[0-9]{4}}/")
		require.NoError(t, err)

		got, err := p.Format(map[string]string{"year": "2024"})
		require.NoError(t, err)
		require.Equal(t, "/archive/2024/", got)

		_, err = p.Format(map[string]string{"year": "24"})
		require.ErrorIs(t, err, urlconf.ErrInvalidParam)
	})

	t.Run("requires every named parameter", func(t *testing.T) {
		t.Parallel()

		p, err := urlconf.ParsePattern("/{a}/{b}/")
		require.NoError(t, err)

		_, err = p.Format(map[string]string{"a": "x"})
		require.ErrorIs(t, err, urlconf.ErrMissingParam)
	})

	t.Run("rejects slashes in plain parameters", func(t *testing.T) {
		t.Parallel()

		p, err := urlconf.ParsePattern("/{slug}/")
		require.NoError(t, err)

		_, err = p.Format(map[string]string{"slug": "a/b"})
		require.ErrorIs(t, err, urlconf.ErrInvalidParam)
	})

	t.Run("escapes values", func(t *testing.T) {
		t.Parallel()

		p, err := urlconf.ParsePattern("/{slug}/")
		require.NoError(t, err)

		got, err := p.Format(map[string]string{"slug": "a b"})
		require.NoError(t, err)
		require.Equal(t, "/a%20b/", got)
	})

	t.Run("wildcard is optional and keeps slashes", func(t *testing.T) {
		t.Parallel()

		p, err := urlconf.ParsePattern("/files/*")
		require.NoError(t, err)

		got, err := p.Format(nil)
		require.NoError(t, err)
		require.Equal(t, "/files/", got)

		got, err = p.Format(map[string]string{"*": "docs/readme.md"})
		require.NoError(t, err)
		require.Equal(t, "/files/docs/readme.md", got)

		got, err = p.Format(map[string]string{"*": "my docs/a?b#c.md"})
		require.NoError(t, err)
		require.Equal(t, "/files/my%20docs/a%3Fb%23c.md", got)
	})
}
