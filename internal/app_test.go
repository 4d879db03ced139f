package internal_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reek/internal"
	"github.com/dmitrymomot/reek/pkg/pages"
	"github.com/dmitrymomot/reek/pkg/urlconf"
	"github.com/dmitrymomot/reek/pkg/views"
)

type site struct {
	resolver *pages.Resolver
	reverse  *pages.ReverseIndex
}

func newSite(t *testing.T, opts ...pages.Option) site {
	t.Helper()

	detail := views.New(views.WithRenderer(views.RenderFunc(func(w http.ResponseWriter, _ *http.Request, _ []string, data views.Data) error {
		params := data["params"].(map[string]string)
		_, err := io.WriteString(w, "item "+params["id"])
		return err
	})))
	routes := urlconf.New[pages.Handler]().Handle("/{id}/", "detail", detail)

	reg := pages.NewRegistry()
	reg.MustRegister(
		views.NewPageView(),
		views.NewApplication("news", "News", routes, views.WithNamespace("news")),
		views.NewView("private", "Private", false, views.WithPermission(views.RequireHeader("X-Staff"))),
	)

	store, err := pages.NewMemoryStore(
		pages.Page{Path: "", ViewName: "page", Title: "Home"},
		pages.Page{Path: "about", ViewName: "page", Title: "About"},
		pages.Page{Path: "news", ViewName: "news", Title: "News"},
		pages.Page{Path: "staff", ViewName: "private", Title: "Staff"},
	)
	require.NoError(t, err)

	s := site{
		resolver: pages.NewResolver(store, reg, opts...),
		reverse:  pages.NewReverseIndex(store, reg, opts...),
	}
	t.Cleanup(func() {
		_ = s.resolver.Close()
		_ = s.reverse.Close()
	})
	return s
}

func do(t *testing.T, h http.Handler, method, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func TestApp_PageDispatch(t *testing.T) {
	t.Parallel()

	s := newSite(t)
	app := internal.New(internal.WithPages(s.resolver))

	t.Run("serves a simple page", func(t *testing.T) {
		t.Parallel()

		rec := do(t, app, http.MethodGet, "/about/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "About")
	})

	t.Run("serves the root page", func(t *testing.T) {
		t.Parallel()

		rec := do(t, app, http.MethodGet, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Home")
	})

	t.Run("delegates to application routes", func(t *testing.T) {
		t.Parallel()

		rec := do(t, app, http.MethodGet, "/news/42/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "item 42", rec.Body.String())
	})

	t.Run("unknown paths are 404", func(t *testing.T) {
		t.Parallel()

		for _, target := range []string{"/missing/", "/about/extra/", "/news/", "/about"} {
			rec := do(t, app, http.MethodGet, target)
			assert.Equal(t, http.StatusNotFound, rec.Code, target)
		}
	})

	t.Run("forbidden views are 403", func(t *testing.T) {
		t.Parallel()

		rec := do(t, app, http.MethodGet, "/staff/")
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = do(t, app, http.MethodGet, "/staff/", "X-Staff", "1")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestApp_PageDispatchOptions(t *testing.T) {
	t.Parallel()

	t.Run("declared routes win over pages", func(t *testing.T) {
		t.Parallel()

		s := newSite(t)
		app := internal.New(
			internal.WithPages(s.resolver),
			internal.WithHandlers(routes(func(r internal.Router) {
				r.GET("/about/", func(c internal.Context) error {
					return c.String(http.StatusOK, "declared")
				})
			})),
		)

		assert.Equal(t, "declared", do(t, app, http.MethodGet, "/about/").Body.String())
		assert.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/news/1/").Code)
	})

	t.Run("append slash redirects to resolvable paths", func(t *testing.T) {
		t.Parallel()

		s := newSite(t)
		app := internal.New(internal.WithPages(s.resolver, internal.WithAppendSlash()))

		rec := do(t, app, http.MethodGet, "/about?x=1")
		require.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/about/?x=1", rec.Header().Get("Location"))

		rec = do(t, app, http.MethodGet, "/news/7")
		require.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/news/7/", rec.Header().Get("Location"))

		assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, "/nowhere").Code)
	})

	t.Run("append slash stays on the site", func(t *testing.T) {
		t.Parallel()

		reg := pages.NewRegistry()
		reg.MustRegister(views.NewView("section", "Section", true))
		store, err := pages.NewMemoryStore(pages.Page{Path: "", ViewName: "section", Title: "Home"})
		require.NoError(t, err)
		resolver := pages.NewResolver(store, reg)
		t.Cleanup(func() { _ = resolver.Close() })

		app := internal.New(internal.WithPages(resolver, internal.WithAppendSlash()))

		rec := do(t, app, http.MethodGet, "/other")
		require.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/other/", rec.Header().Get("Location"))

		for _, path := range []string{"//evil.example", "/\\evil.example"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.URL.Path = path
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusMovedPermanently, rec.Code, path)
			assert.Empty(t, rec.Header().Get("Location"), path)
		}
	})

	t.Run("not found handler renders unresolved pages", func(t *testing.T) {
		t.Parallel()

		s := newSite(t)
		app := internal.New(
			internal.WithPages(s.resolver),
			internal.WithNotFoundHandler(func(c internal.Context) error {
				return c.String(http.StatusNotFound, "nothing at "+c.Request().URL.Path)
			}),
		)

		rec := do(t, app, http.MethodGet, "/missing/")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "nothing at /missing/", rec.Body.String())
	})

	t.Run("error handler sees the resolved page", func(t *testing.T) {
		t.Parallel()

		s := newSite(t)
		app := internal.New(
			internal.WithPages(s.resolver),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				httpErr := internal.ToHTTPError(err)
				page := "-"
				if m, ok := c.Page(); ok {
					page = m.Page.Path
				}
				return c.String(httpErr.Code, page)
			}),
		)

		rec := do(t, app, http.MethodGet, "/staff/")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "staff", rec.Body.String())

		rec = do(t, app, http.MethodGet, "/missing/")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "-", rec.Body.String())
	})

	t.Run("middleware wraps page dispatch", func(t *testing.T) {
		t.Parallel()

		s := newSite(t)
		mw := func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.SetHeader("X-Seen", "yes")
				return next(c)
			}
		}
		app := internal.New(internal.WithPages(s.resolver), internal.WithMiddleware(mw))

		rec := do(t, app, http.MethodGet, "/about/")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "yes", rec.Header().Get("X-Seen"))
	})
}

func TestApp_Reverse(t *testing.T) {
	t.Parallel()

	s := newSite(t)
	link := routes(func(r internal.Router) {
		r.GET("/link", func(c internal.Context) error {
			url, err := c.Reverse("news:detail", map[string]string{"id": "7"})
			if err != nil {
				return err
			}
			return c.String(http.StatusOK, url)
		})
	})

	t.Run("builds urls from the index", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithPages(s.resolver, internal.WithReverse(s.reverse)), internal.WithHandlers(link))
		rec := do(t, app, http.MethodGet, "/link")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/news/7/", rec.Body.String())
	})

	t.Run("fails without an index", func(t *testing.T) {
		t.Parallel()

		var got error
		app := internal.New(
			internal.WithPages(s.resolver),
			internal.WithHandlers(link),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return c.NoContent(http.StatusInternalServerError)
			}),
		)
		rec := do(t, app, http.MethodGet, "/link")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.ErrorIs(t, got, internal.ErrPagesNotConfigured)
	})
}

func TestApp_HealthAndMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	s := newSite(t, pages.WithMetrics(pages.NewMetrics(pages.WithMetricsRegistry(reg))))
	app := internal.New(
		internal.WithPages(s.resolver),
		internal.WithMetrics(reg),
		internal.WithHealthChecks(
			internal.WithReadinessCheck("store", func(context.Context) error { return nil }),
		),
	)

	assert.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/health/live").Code)
	assert.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/health/ready").Code)

	do(t, app, http.MethodGet, "/about/")
	do(t, app, http.MethodGet, "/missing/")

	rec := do(t, app, http.MethodGet, internal.DefaultMetricsPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reek_pages_resolutions_total")
	assert.Contains(t, rec.Body.String(), "reek_pages_resolution_duration_seconds")
}

func TestApp_StaticFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"public/app.css": {Data: []byte("body{}")}}
	app := internal.New(internal.WithStaticFiles("/static/", fsys, "public"))

	rec := do(t, app, http.MethodGet, "/static/app.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, "/static/").Code)
}

func TestApp_HandlerErrors(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/teapot", func(c internal.Context) error {
			return c.Error(http.StatusTeapot, "short and stout")
		})
		r.GET("/boom", func(internal.Context) error {
			return io.ErrUnexpectedEOF
		})
		r.GET("/late", func(c internal.Context) error {
			_ = c.String(http.StatusAccepted, "done")
			return io.ErrUnexpectedEOF
		})
	})))

	assert.Equal(t, http.StatusTeapot, do(t, app, http.MethodGet, "/teapot").Code)
	assert.Equal(t, http.StatusInternalServerError, do(t, app, http.MethodGet, "/boom").Code)

	rec := do(t, app, http.MethodGet, "/late")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
