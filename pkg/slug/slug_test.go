package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/reek/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     []slug.Option
		expected string
	}{
		{name: "simple text", input: "Hello World", expected: "hello-world"},
		{name: "punctuation", input: "Hello, World!", expected: "hello-world"},
		{name: "numbers", input: "Product 123", expected: "product-123"},
		{name: "repeated spaces", input: "Too    Many     Spaces", expected: "too-many-spaces"},
		{name: "surrounding spaces", input: "  Trim Me  ", expected: "trim-me"},
		{name: "special characters", input: "Price: $99.99", expected: "price-99-99"},
		{name: "empty", input: "", expected: ""},
		{name: "only symbols", input: "!@#$%^&*()", expected: ""},
		{name: "diacritics", input: "Café résumé naïve", expected: "cafe-resume-naive"},
		{name: "german", input: "Über Größe straße", expected: "uber-grosse-strasse"},
		{name: "nordic", input: "Smørrebrød Æble", expected: "smorrebrod-aeble"},
		{name: "non latin scripts", input: "News Новости 2024", expected: "news-2024"},
		{name: "keep case", input: "Hello World", opts: []slug.Option{slug.Lowercase(false)}, expected: "Hello-World"},
		{name: "separator", input: "Hello World", opts: []slug.Option{slug.Separator("_")}, expected: "hello_world"},
		{
			name:     "max length cuts at a separator",
			input:    "This is a very long title",
			opts:     []slug.Option{slug.MaxLength(12)},
			expected: "this-is-a",
		},
		{
			name:     "max length on a boundary",
			input:    "Cut off cleanly",
			opts:     []slug.Option{slug.MaxLength(7)},
			expected: "cut-off",
		},
		{
			name:     "max length inside one word",
			input:    "Supercalifragilistic",
			opts:     []slug.Option{slug.MaxLength(5)},
			expected: "super",
		},
		{
			name:     "strip characters keeps words together",
			input:    "Don't stop",
			opts:     []slug.Option{slug.StripChars("'")},
			expected: "dont-stop",
		},
		{
			name:     "replacements",
			input:    "Fish & Chips @ Home",
			opts:     []slug.Option{slug.CustomReplace(map[string]string{"&": "and", "@": "at"})},
			expected: "fish-and-chips-at-home",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, slug.Make(tt.input, tt.opts...))
		})
	}
}
