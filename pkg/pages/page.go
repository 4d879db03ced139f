package pages

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Page is a node of the page tree.
//
// Path is the materialized path of the page: slash-separated segments
// without leading or trailing slash. The root page has the empty path.
type Page struct {
	ID       string `json:"id" yaml:"id"`
	ParentID string `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Path     string `json:"path" yaml:"path"`
	ViewName string `json:"view_name" yaml:"view"`
	Title    string `json:"title" yaml:"title"`
	Order    int    `json:"order" yaml:"order"`
}

// Slug returns the last path segment, or "" for the root page.
func (p Page) Slug() string {
	if i := strings.LastIndexByte(p.Path, '/'); i >= 0 {
		return p.Path[i+1:]
	}
	return p.Path
}

// URL returns the absolute URL path of the page, always with a trailing slash.
func (p Page) URL() string {
	if p.Path == "" {
		return "/"
	}
	return "/" + p.Path + "/"
}

// Depth returns the number of path segments; the root page has depth 0.
func (p Page) Depth() int {
	return len(Split(p.Path))
}

// IsRoot reports whether p is the root page.
func (p Page) IsRoot() bool { return p.Path == "" }

func (p Page) String() string {
	return fmt.Sprintf("<Page %s id=%s>", p.URL(), p.ID)
}

// Split returns the non-empty segments of a slash-separated path.
func Split(path string) []string {
	var out []string
	for s := range strings.SplitSeq(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CandidatePaths returns every page path that could serve a request for the
// given segments: the root "" followed by each prefix, shortest first.
func CandidatePaths(segments []string) []string {
	out := make([]string, 0, len(segments)+1)
	out = append(out, "")
	for i := range segments {
		out = append(out, strings.Join(segments[:i+1], "/"))
	}
	return out
}

// NormalizePath trims surrounding slashes and collapses empty segments.
func NormalizePath(path string) string {
	return strings.Join(Split(path), "/")
}

// ParentPath returns the path of the parent page and false for top-level
// and root pages, which have no parent.
func ParentPath(path string) (string, bool) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "", false
	}
	return path[:i], true
}

// IsDescendant reports whether path lies strictly below ancestor.
// Every non-root page is a descendant of the root.
func IsDescendant(path, ancestor string) bool {
	if ancestor == "" {
		return path != ""
	}
	return strings.HasPrefix(path, ancestor+"/")
}

// ValidatePath reports ErrInvalidPath unless path is in normalized form and
// every segment is usable in a URL pattern.
func ValidatePath(path string) error {
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") {
		return fmt.Errorf("%w: %q has surrounding slashes", ErrInvalidPath, path)
	}
	for seg := range strings.SplitSeq(path, "/") {
		switch seg {
		case "":
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		case ".", "..":
			return fmt.Errorf("%w: %q has a relative segment", ErrInvalidPath, path)
		}
		if strings.ContainsAny(seg, "{}*?#%") || strings.ContainsFunc(seg, unicode.IsSpace) {
			return fmt.Errorf("%w: segment %q has reserved characters", ErrInvalidPath, seg)
		}
	}
	return nil
}

// SortLongestFirst orders pages by depth, deepest first, then by path.
func SortLongestFirst(pages []Page) {
	slices.SortFunc(pages, func(a, b Page) int {
		if d := b.Depth() - a.Depth(); d != 0 {
			return d
		}
		return strings.Compare(a.Path, b.Path)
	})
}

// SortTree orders pages by path so parents precede their children.
func SortTree(pages []Page) {
	slices.SortFunc(pages, func(a, b Page) int {
		return strings.Compare(a.Path, b.Path)
	})
}
