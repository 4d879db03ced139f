// Package reek serves a tree of content pages over HTTP.
//
// Every page has a materialized path ("", "news", "news/sport") and names a
// registered view. A request path is resolved to the deepest page that is a
// prefix of it; application views then match the remainder against their own
// route table. The building blocks live under pkg/: pages (registry,
// resolver, reverse index, stores), urlconf (route tables), views (page
// rendering), pagestore (SQL storage). This package is the HTTP host.
//
// # Quick Start
//
//	reg := pages.NewRegistry()
//	reg.MustRegister(views.NewPageView(), news.NewApplication())
//
//	store, _ := pages.NewMemoryStore(
//	    pages.Page{Path: "", ViewName: "page", Title: "Home"},
//	    pages.Page{Path: "news", ViewName: "news", Title: "News"},
//	)
//	resolver := pages.NewResolver(store, reg)
//	index := pages.NewReverseIndex(store, reg)
//
//	app := reek.New(
//	    reek.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    reek.WithPages(resolver, reek.WithReverse(index)),
//	    reek.WithHealthChecks(),
//	)
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Handlers
//
// Handlers declare regular routes next to the page tree. Declared routes
// always win over pages:
//
//	func (h *API) Routes(r reek.Router) {
//	    r.GET("/api/pages", h.list)
//	}
//
//	func (h *API) list(c reek.Context) error {
//	    all, err := h.store.All(c)
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, all)
//	}
//
// # Errors
//
// Unresolvable paths surface as pages.ErrNotFound and become 404 responses.
// Custom error handlers use StatusCode or ToHTTPError to apply the same
// mapping:
//
//	reek.WithErrorHandler(func(c reek.Context, err error) error {
//	    httpErr := reek.ToHTTPError(err)
//	    return c.Render(httpErr.Code, templates.Error(httpErr))
//	})
//
// # Shutdown
//
// Run handles SIGINT/SIGTERM. Background tasks are cancelled and shutdown
// hooks run in registration order:
//
//	app.Run(":8080",
//	    reek.Background(store.Listen),
//	    reek.ShutdownHook(db.Shutdown(conn)),
//	)
package reek
