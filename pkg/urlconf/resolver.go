package urlconf

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Match is the outcome of a successful resolution.
type Match[H any] struct {
	Params map[string]string
	Route  Route[H]
	// Path is the portion of the input handed to the route table,
	// always starting with "/".
	Path string
}

// Resolver matches paths against a route table mounted under a prefix.
// Matching is delegated to a chi routing tree, so precedence follows chi:
// static segments beat regexp parameters, which beat plain parameters,
// which beat catch-alls.
type Resolver[H any] struct {
	mux    *chi.Mux
	index  map[string]int
	prefix string
	routes []Route[H]
	tried  []string
}

// NewResolver builds a resolver for routes mounted under prefix.
// The prefix uses the same form as page paths: no leading or trailing slash,
// "" for the site root.
func NewResolver[H any](prefix string, routes *Routes[H]) (r *Resolver[H], err error) {
	if err := routes.Err(); err != nil {
		return nil, err
	}

	prefix = strings.Trim(prefix, "/")
	r = &Resolver[H]{
		mux:    chi.NewRouter(),
		index:  make(map[string]int, routes.Len()),
		prefix: prefix,
		routes: routes.All(),
	}

	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("%w: %v", ErrInvalidPattern, rec)
		}
	}()

	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for i, rt := range r.routes {
		r.mux.Handle(rt.Pattern, noop)
		r.index[rt.Pattern] = i
		r.tried = append(r.tried, Join(prefix, rt.Pattern))
	}

	return r, nil
}

// Prefix returns the mount prefix.
func (r *Resolver[H]) Prefix() string { return r.prefix }

// Routes returns the mounted routes in registration order.
func (r *Resolver[H]) Routes() []Route[H] {
	out := make([]Route[H], len(r.routes))
	copy(out, r.routes)
	return out
}

// Resolve matches path, with or without a leading slash, against the table.
// A path outside the prefix or matching no route yields a *NoMatchError
// listing every prefixed pattern that was tried.
func (r *Resolver[H]) Resolve(path string) (*Match[H], error) {
	rest, ok := r.strip(path)
	if !ok {
		return nil, r.noMatch(path)
	}

	rctx := chi.NewRouteContext()
	pattern := r.mux.Find(rctx, http.MethodGet, rest)
	i, ok := r.index[pattern]
	if !ok {
		return nil, r.noMatch(path)
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for k, key := range rctx.URLParams.Keys {
		params[key] = rctx.URLParams.Values[k]
	}

	return &Match[H]{Route: r.routes[i], Params: params, Path: rest}, nil
}

func (r *Resolver[H]) strip(path string) (string, bool) {
	path = strings.TrimPrefix(path, "/")
	if r.prefix == "" {
		return "/" + path, true
	}
	rest, ok := strings.CutPrefix(path, r.prefix+"/")
	if !ok {
		return "", false
	}
	return "/" + rest, true
}

func (r *Resolver[H]) noMatch(path string) error {
	tried := make([]string, len(r.tried))
	copy(tried, r.tried)
	return &NoMatchError{Path: path, Tried: tried}
}

// Join prefixes a route pattern with a page path and returns it in page path
// form, without the leading slash: Join("blog", "/{slug}/") is "blog/{slug}/"
// and Join("", "/") is "".
func Join(prefix, pattern string) string {
	prefix = strings.Trim(prefix, "/")
	pattern = strings.TrimPrefix(pattern, "/")
	if prefix == "" {
		return pattern
	}
	return prefix + "/" + pattern
}
