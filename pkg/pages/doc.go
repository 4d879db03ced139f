// Package pages maps URL paths onto a stored tree of pages.
//
// Every [Page] has a materialized path ("", "news", "news/archive") and the
// label of the [View] that serves it. A [Resolver] takes a request path,
// asks the [Store] for every ancestor candidate in one query and picks the
// longest stored match. Segments below the matched page are handed to the
// view when it allows subpages, and pages served by an [Application] view
// delegate the rest of the path to the application's own route table.
//
// # Views
//
// Views are registered explicitly on a [Registry] and looked up by label:
//
//	reg := pages.NewRegistry()
//	reg.MustRegister(views.NewPageView(), newsApp)
//
// # Resolving
//
//	r := pages.NewResolver(store, reg, pages.WithLogger(log))
//	defer r.Close()
//
//	m, err := r.Resolve(ctx, "/news/2024/hello/")
//	if errors.Is(err, pages.ErrNotFound) {
//	    // 404
//	}
//	err = m.Handler.ServePage(w, req, m)
//
// # Reversing
//
// A [ReverseIndex] collects the named routes of every application page,
// prefixed with the page's path, and formats URLs from them:
//
//	idx := pages.NewReverseIndex(store, reg)
//	url, err := idx.Reverse(ctx, "news:detail", map[string]string{"slug": "hello"})
//	// url == "/news/hello/"
//
// The index and the resolver's sub-resolver cache subscribe to store
// events and are invalidated by every page write.
//
// # Stores
//
// [MemoryStore] keeps pages in process. [CachedStore] puts a cache in front
// of any store's candidate lookups. A relational implementation lives in
// package pagestore.
package pages
