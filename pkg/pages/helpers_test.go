package pages_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reek/pkg/pages"
	"github.com/dmitrymomot/reek/pkg/urlconf"
)

// namedHandler is a comparable Handler so tests can assert which entry
// point a match selected.
type namedHandler string

func (namedHandler) ServePage(http.ResponseWriter, *http.Request, *pages.Match) error {
	return nil
}

type testView struct {
	label    string
	name     string
	subpages bool
}

func (v testView) Label() string        { return v.label }
func (v testView) Name() string         { return v.name }
func (v testView) AllowsSubpages() bool { return v.subpages }

func (testView) ServePage(http.ResponseWriter, *http.Request, *pages.Match) error {
	return nil
}

type testApp struct {
	testView
	namespace string
	built     *atomic.Int32
	routes    func() *urlconf.Routes[pages.Handler]
}

func (a testApp) URLs() *urlconf.Routes[pages.Handler] {
	if a.built != nil {
		a.built.Add(1)
	}
	return a.routes()
}

func (a testApp) Namespace() string { return a.namespace }
func (a testApp) AppName() string   { return a.label }

func itemRoutes() *urlconf.Routes[pages.Handler] {
	return urlconf.New[pages.Handler]().
		Handle("/", "index", namedHandler("index")).
		Handle("/item/{id}/", "detail", namedHandler("detail")).
		Handle("/archive/{year:[0-9]{4}}/", "archive", namedHandler("archive"))
}

func newApp(label string) testApp {
	return testApp{
		testView: testView{label: label, name: "App " + label, subpages: true},
		built:    &atomic.Int32{},
		routes:   itemRoutes,
	}
}

var (
	plainView   = testView{label: "page", name: "Simple page"}
	sectionView = testView{label: "section", name: "Section", subpages: true}
)

func newRegistry(t *testing.T, views ...pages.View) *pages.Registry {
	t.Helper()

	reg := pages.NewRegistry()
	for _, v := range views {
		require.NoError(t, reg.Register(v))
	}
	return reg
}

func newStore(t *testing.T, seed ...pages.Page) *pages.MemoryStore {
	t.Helper()

	s, err := pages.NewMemoryStore(seed...)
	require.NoError(t, err)
	return s
}

func newResolver(t *testing.T, store pages.Store, reg *pages.Registry, opts ...pages.Option) *pages.Resolver {
	t.Helper()

	r := pages.NewResolver(store, reg, opts...)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func page(path, view string) pages.Page {
	return pages.Page{Path: path, ViewName: view, Title: path}
}

// countingStore counts the queries reaching the wrapped store.
type countingStore struct {
	pages.Store
	all        atomic.Int32
	candidates atomic.Int32
}

func (s *countingStore) All(ctx context.Context) ([]pages.Page, error) {
	s.all.Add(1)
	return s.Store.All(ctx)
}

func (s *countingStore) Candidates(ctx context.Context, paths []string) ([]pages.Page, error) {
	s.candidates.Add(1)
	return s.Store.Candidates(ctx, paths)
}

// failingStore fails every read.
type failingStore struct {
	pages.Hub
	err error
}

func (s *failingStore) Candidates(context.Context, []string) ([]pages.Page, error) {
	return nil, s.err
}

func (s *failingStore) All(context.Context) ([]pages.Page, error) {
	return nil, s.err
}
