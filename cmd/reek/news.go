package main

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/reek/pkg/pages"
	"github.com/dmitrymomot/reek/pkg/urlconf"
	"github.com/dmitrymomot/reek/pkg/views"
)

// newsApplication is the "news" page type. Placing it in the tree mounts
// an index, yearly archives and article pages below the page.
func newsApplication() *views.Application {
	routes := urlconf.New[pages.Handler]().
		Handle("/", "index", views.New(views.WithContext(newsIndex))).
		Handle("/archive/{year:[0-9]{4}}/", "archive", views.New(views.WithContext(newsArchive))).
		Handle("/{slug}/", "detail", views.New(views.WithContext(newsDetail)))

	return views.NewApplication("news", "News", routes, views.WithNamespace("news"))
}

var newsIndex views.ContextFunc = func(_ *http.Request, m *pages.Match, data views.Data) error {
	data["title"] = m.Page.Title
	data["body"] = "Latest articles"
	return nil
}

var newsArchive views.ContextFunc = func(_ *http.Request, m *pages.Match, data views.Data) error {
	data["title"] = m.Page.Title + " " + m.Param("year")
	data["body"] = "Articles published in " + m.Param("year")
	return nil
}

var newsDetail views.ContextFunc = func(_ *http.Request, m *pages.Match, data views.Data) error {
	data["title"] = headline(m.Param("slug"))
	data["body"] = "Filed under " + m.Page.Title
	return nil
}

func headline(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
