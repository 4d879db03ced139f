package urlconf

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Pattern is a parsed route pattern that can be formatted back into a path.
type Pattern struct {
	raw      string
	params   []string
	segments []segment
}

type segment struct {
	re       *regexp.Regexp
	literal  string
	param    string
	wildcard bool
}

// ParsePattern parses a chi-style route pattern.
// Parameters are `{name}` or `{name:regexp}`; a trailing `*` is a catch-all
// that is addressed by the parameter name "*".
func ParsePattern(pattern string) (Pattern, error) {
	p := Pattern{raw: pattern}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			p.segments = append(p.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '{':
			end, err := closingBrace(pattern, i)
			if err != nil {
				return Pattern{}, err
			}
			seg, err := parseParam(pattern[i+1 : end])
			if err != nil {
				return Pattern{}, errors.Join(ErrInvalidPattern, fmt.Errorf("%q: %w", pattern, err))
			}
			for _, name := range p.params {
				if name == seg.param {
					return Pattern{}, errors.Join(ErrInvalidPattern, fmt.Errorf("%q: parameter %q repeated", pattern, name))
				}
			}
			flush()
			p.segments = append(p.segments, seg)
			p.params = append(p.params, seg.param)
			i = end
		case '*':
			if i != len(pattern)-1 {
				return Pattern{}, errors.Join(ErrInvalidPattern, fmt.Errorf("%q: wildcard must be the last character", pattern))
			}
			flush()
			p.segments = append(p.segments, segment{param: "*", wildcard: true})
			p.params = append(p.params, "*")
		case '}':
			return Pattern{}, errors.Join(ErrInvalidPattern, fmt.Errorf("%q: unbalanced '}'", pattern))
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return p, nil
}

func closingBrace(pattern string, start int) (int, error) {
	depth := 0
	for i := start; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, errors.Join(ErrInvalidPattern, fmt.Errorf("%q: unbalanced '{'", pattern))
}

func parseParam(body string) (segment, error) {
	name, expr, hasExpr := strings.Cut(body, ":")
	if name == "" {
		return segment{}, errors.New("empty parameter name")
	}
	seg := segment{param: name}
	if hasExpr {
		if expr == "" {
			return segment{}, fmt.Errorf("parameter %q has an empty expression", name)
		}
		re, err := regexp.Compile("^(?:" + expr + ")$")
		if err != nil {
			return segment{}, fmt.Errorf("parameter %q: %w", name, err)
		}
		seg.re = re
	}
	return seg, nil
}

// String returns the pattern as written.
func (p Pattern) String() string { return p.raw }

// Params returns the parameter names in pattern order.
func (p Pattern) Params() []string {
	out := make([]string, len(p.params))
	copy(out, p.params)
	return out
}

// Format substitutes params into the pattern and returns the resulting path.
// Every named parameter is required and must satisfy its expression; the
// catch-all is optional. Values are unescaped text: named parameters are
// escaped whole, the catch-all segment by segment so its slashes survive.
func (p Pattern) Format(params map[string]string) (string, error) {
	var b strings.Builder
	for _, seg := range p.segments {
		switch {
		case seg.wildcard:
			segs := strings.Split(params["*"], "/")
			for i, v := range segs {
				segs[i] = url.PathEscape(v)
			}
			b.WriteString(strings.Join(segs, "/"))
		case seg.param != "":
			v, ok := params[seg.param]
			if !ok {
				return "", fmt.Errorf("%w: %q in %q", ErrMissingParam, seg.param, p.raw)
			}
			if err := seg.check(v); err != nil {
				return "", fmt.Errorf("%w: %q=%q in %q", ErrInvalidParam, seg.param, v, p.raw)
			}
			b.WriteString(url.PathEscape(v))
		default:
			b.WriteString(seg.literal)
		}
	}
	return b.String(), nil
}

func (s segment) check(v string) error {
	if s.re != nil {
		if !s.re.MatchString(v) {
			return ErrInvalidParam
		}
		return nil
	}
	if v == "" || strings.Contains(v, "/") {
		return ErrInvalidParam
	}
	return nil
}
