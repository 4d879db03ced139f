package urlconf

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// Route is a single named entry of a route table.
type Route[H any] struct {
	Handler  H
	Defaults map[string]string
	Pattern  string
	Name     string
}

// RouteOption configures a route at registration time.
type RouteOption func(*routeConfig)

type routeConfig struct {
	defaults map[string]string
}

// WithDefaults attaches extra values that are passed along with every match
// of the route, in addition to the parameters captured from the path.
func WithDefaults(defaults map[string]string) RouteOption {
	return func(c *routeConfig) {
		if c.defaults == nil {
			c.defaults = make(map[string]string, len(defaults))
		}
		maps.Copy(c.defaults, defaults)
	}
}

// Routes is an ordered route table.
// Registration errors are collected and reported by Err so tables can be
// declared as a single chained expression.
type Routes[H any] struct {
	names    map[string]struct{}
	patterns map[string]struct{}
	routes   []Route[H]
	errs     []error
}

// New creates an empty route table.
func New[H any]() *Routes[H] {
	return &Routes[H]{
		names:    make(map[string]struct{}),
		patterns: make(map[string]struct{}),
	}
}

// Handle appends a route. The name may be empty for routes that are never
// reversed.
func (r *Routes[H]) Handle(pattern, name string, h H, opts ...RouteOption) *Routes[H] {
	cfg := &routeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	r.add(Route[H]{Pattern: pattern, Name: name, Handler: h, Defaults: cfg.defaults})
	return r
}

// Include mounts every route of other under prefix, keeping names.
func (r *Routes[H]) Include(prefix string, other *Routes[H]) *Routes[H] {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		r.errs = append(r.errs, fmt.Errorf("%w: include prefix %q must start with '/'", ErrInvalidPattern, prefix))
		return r
	}
	r.errs = append(r.errs, other.errs...)
	for _, rt := range other.routes {
		rt.Pattern = prefix + rt.Pattern
		r.add(rt)
	}
	return r
}

func (r *Routes[H]) add(rt Route[H]) {
	if !strings.HasPrefix(rt.Pattern, "/") {
		r.errs = append(r.errs, fmt.Errorf("%w: %q must start with '/'", ErrInvalidPattern, rt.Pattern))
		return
	}
	if _, err := ParsePattern(rt.Pattern); err != nil {
		r.errs = append(r.errs, err)
		return
	}
	if _, ok := r.patterns[rt.Pattern]; ok {
		r.errs = append(r.errs, fmt.Errorf("%w: %q", ErrDuplicatePattern, rt.Pattern))
		return
	}
	if rt.Name != "" {
		if _, ok := r.names[rt.Name]; ok {
			r.errs = append(r.errs, fmt.Errorf("%w: %q", ErrDuplicateName, rt.Name))
			return
		}
		r.names[rt.Name] = struct{}{}
	}
	r.patterns[rt.Pattern] = struct{}{}
	r.routes = append(r.routes, rt)
}

// Err returns every registration error joined, or nil.
func (r *Routes[H]) Err() error {
	return errors.Join(r.errs...)
}

// Must panics if any registration failed and returns the table otherwise.
func (r *Routes[H]) Must() *Routes[H] {
	if err := r.Err(); err != nil {
		panic(err)
	}
	return r
}

// All returns a copy of the routes in registration order.
func (r *Routes[H]) All() []Route[H] {
	out := make([]Route[H], len(r.routes))
	copy(out, r.routes)
	return out
}

// Len returns the number of registered routes.
func (r *Routes[H]) Len() int { return len(r.routes) }
