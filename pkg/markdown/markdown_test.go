package markdown_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reek/pkg/markdown"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	conv := markdown.New()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "atx heading",
			input:    "# Title",
			contains: []string{`<h1 id="title">Title</h1>`},
		},
		{
			name:     "setext heading",
			input:    "Section\n-------",
			contains: []string{`<h2 id="section">Section</h2>`},
		},
		{
			name:     "paragraphs",
			input:    "one\n\ntwo",
			contains: []string{"<p>one</p>", "<p>two</p>"},
		},
		{
			name:     "blockquote",
			input:    "> quoted",
			contains: []string{"<blockquote>", "<p>quoted</p>"},
		},
		{
			name:     "unordered list",
			input:    "* a\n* b",
			contains: []string{"<ul>", "<li>a</li>", "<li>b</li>"},
		},
		{
			name:     "tab indented code block",
			input:    "\tcode here",
			contains: []string{"<pre><code>code here\n</code></pre>"},
		},
		{
			name:     "links get nofollow",
			input:    "[home](https://example.com)",
			contains: []string{`href="https://example.com"`, `rel="nofollow"`},
		},
		{
			name:     "table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<th>a</th>", "<td>2</td>"},
		},
		{
			name:     "raw script is dropped",
			input:    "hello <script>alert(1)</script>",
			excludes: []string{"<script"},
		},
		{
			name:     "javascript urls are dropped",
			input:    "[x](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := conv.Convert(tt.input)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestConverter_Options(t *testing.T) {
	t.Parallel()

	t.Run("custom policy", func(t *testing.T) {
		t.Parallel()

		conv := markdown.New(markdown.WithPolicy(bluemonday.StrictPolicy()))
		out, err := conv.Convert("# Title\n\n**bold**")
		require.NoError(t, err)
		assert.NotContains(t, out, "<")
		assert.Contains(t, out, "Title")
		assert.Contains(t, out, "bold")
	})

	t.Run("nil policy keeps raw output", func(t *testing.T) {
		t.Parallel()

		conv := markdown.New(markdown.WithPolicy(nil))
		out, err := conv.Convert("# Title")
		require.NoError(t, err)
		assert.Contains(t, out, `<h1 id="title">`)
	})
}

func TestDetab(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "    a\n        b", markdown.Detab("\ta\n\t\tb"))
	assert.Equal(t, "no tabs", markdown.Detab("no tabs"))
}

func TestStripTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello world", markdown.StripTags("<p>Hello <b>world</b></p>"))
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("with front matter", func(t *testing.T) {
		t.Parallel()

		doc, err := markdown.Parse([]byte("---\ntitle: About\norder: 2\n---\n# About\n"))
		require.NoError(t, err)
		assert.Equal(t, "About", doc.String("title"))
		assert.Equal(t, 2, doc.Meta["order"])
		assert.Equal(t, "# About\n", doc.Body)
	})

	t.Run("without front matter", func(t *testing.T) {
		t.Parallel()

		doc, err := markdown.Parse([]byte("# Plain"))
		require.NoError(t, err)
		assert.Empty(t, doc.Meta)
		assert.Equal(t, "# Plain", doc.Body)
		assert.Empty(t, doc.String("title"))
	})

	t.Run("empty front matter", func(t *testing.T) {
		t.Parallel()

		doc, err := markdown.Parse([]byte("---\n---\nbody"))
		require.NoError(t, err)
		assert.Empty(t, doc.Meta)
		assert.Equal(t, "body", doc.Body)
	})

	t.Run("unterminated", func(t *testing.T) {
		t.Parallel()

		_, err := markdown.Parse([]byte("---\ntitle: x\n"))
		require.ErrorIs(t, err, markdown.ErrInvalidFrontmatter)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := markdown.Parse([]byte("---\n: [\n---\nbody"))
		require.ErrorIs(t, err, markdown.ErrInvalidFrontmatter)
	})
}
