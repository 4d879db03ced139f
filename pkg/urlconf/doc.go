// Package urlconf builds explicit, ordered route tables and resolves paths
// against them.
//
// A route table is assembled with [New] and [Routes.Handle]. Registration
// order is matching order, names and patterns must be unique:
//
//	routes := urlconf.New[http.Handler]().
//	    Handle("/", "index", indexHandler).
//	    Handle("/{slug}/", "detail", detailHandler).
//	    Handle("/archive/{year:[0-9]{4}}/", "archive", archiveHandler)
//	if err := routes.Err(); err != nil {
//	    return err
//	}
//
// Patterns use chi's syntax: `{name}` matches one path segment,
// `{name:regexp}` constrains it, and a trailing `*` captures the rest.
//
// A [Resolver] mounts a table under a path prefix (typically the path of
// the page that hosts an application) and matches full paths against it:
//
//	r, err := urlconf.NewResolver("blog", routes)
//	m, err := r.Resolve("blog/archive/2024/")
//	// m.Route.Name == "archive", m.Params["year"] == "2024"
//
// [ParsePattern] and [Pattern.Format] turn a pattern back into a concrete
// path, which is what reverse URL lookups are built on.
package urlconf
