package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

const tabWidth = 4

var (
	defaultPolicy *bluemonday.Policy
	policyOnce    sync.Once
)

// DefaultPolicy returns the shared policy used by converters without
// WithPolicy.
func DefaultPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowElements(
			"h1", "h2", "h3", "h4", "h5", "h6",
			"p", "br", "hr",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		p.AllowAttrs("href", "title").OnElements("a")
		p.AllowAttrs("src", "alt", "title").OnElements("img")
		p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		p.AllowAttrs("align").OnElements("th", "td")
		p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
		p.RequireNoFollowOnLinks(true)
		defaultPolicy = p
	})
	return defaultPolicy
}

// Option configures a Converter.
type Option func(*Converter)

// WithPolicy replaces the sanitization policy. A nil policy disables
// sanitization.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(c *Converter) { c.policy = p }
}

// WithExtensions adds goldmark extensions on top of the defaults.
func WithExtensions(ext ...goldmark.Extender) Option {
	return func(c *Converter) { c.extensions = append(c.extensions, ext...) }
}

// Converter renders markdown to sanitized HTML. It is safe for concurrent
// use.
type Converter struct {
	md         goldmark.Markdown
	policy     *bluemonday.Policy
	extensions []goldmark.Extender
}

// New returns a Converter with GFM tables, strikethrough and autolinks
// enabled and automatic heading IDs.
func New(opts ...Option) *Converter {
	c := &Converter{
		policy:     DefaultPolicy(),
		extensions: []goldmark.Extender{extension.Table, extension.Strikethrough, extension.Linkify},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.md = goldmark.New(
		goldmark.WithExtensions(c.extensions...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return c
}

// Convert renders source to HTML.
func (c *Converter) Convert(source string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(Detab(source)), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConvert, err)
	}
	if c.policy == nil {
		return buf.String(), nil
	}
	return c.policy.Sanitize(buf.String()), nil
}

// Detab replaces every tab with four spaces.
func Detab(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// StripTags removes all markup, leaving text.
func StripTags(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}
