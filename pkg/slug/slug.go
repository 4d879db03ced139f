package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures Make.
type Option func(*config)

type config struct {
	replace   map[string]string
	strip     string
	sep       string
	maxLength int
	lower     bool
}

// MaxLength truncates the slug to at most n bytes, cutting at a separator
// when one is available. Zero means unlimited.
func MaxLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

// Separator sets the word separator. Default "-".
func Separator(sep string) Option {
	return func(c *config) {
		if sep != "" {
			c.sep = sep
		}
	}
}

// Lowercase toggles lowercasing. Default true.
func Lowercase(on bool) Option {
	return func(c *config) { c.lower = on }
}

// StripChars removes the given characters before slugifying, so they do
// not split words.
func StripChars(chars string) Option {
	return func(c *config) { c.strip = chars }
}

// CustomReplace applies literal replacements before slugifying.
func CustomReplace(m map[string]string) Option {
	return func(c *config) { c.replace = m }
}

var transliterations = map[rune]string{
	'ß': "ss", 'æ': "ae", 'Æ': "AE", 'ø': "o", 'Ø': "O",
	'œ': "oe", 'Œ': "OE", 'đ': "d", 'Đ': "D", 'ł': "l",
	'Ł': "L", 'þ': "th", 'Þ': "TH", 'ð': "d", 'Ð': "D",
}

// Make returns the slug of s.
func Make(s string, opts ...Option) string {
	cfg := config{sep: "-", lower: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	for from, to := range cfg.replace {
		s = strings.ReplaceAll(s, from, " "+to+" ")
	}
	if cfg.strip != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(cfg.strip, r) {
				return -1
			}
			return r
		}, s)
	}

	s = fold(s)
	if cfg.lower {
		s = strings.ToLower(s)
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	out := strings.Join(words, cfg.sep)

	if cfg.maxLength > 0 && len(out) > cfg.maxLength {
		out = out[:cfg.maxLength]
		if i := strings.LastIndex(out, cfg.sep); i > 0 {
			out = out[:i]
		}
		out = strings.TrimSuffix(out, cfg.sep)
	}
	return out
}

// fold removes diacritics and transliterates letters without a
// decomposition.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if tr, ok := transliterations[r]; ok {
			b.WriteString(tr)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
