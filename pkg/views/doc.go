// Package views provides page types for the pages resolver.
//
// A Handler is assembled from four strategies that run in a fixed order on
// every request:
//
//	PermissionChecker  may the request see this page?
//	ContextBuilder     data handed to the renderer (chained)
//	TemplateResolver   template names, most specific first
//	Renderer           writes the response
//
// Built-in page types:
//
//	views.NewPageView()                       // "page", no subpages
//	views.NewContentView(store, converter)    // "content_page", markdown by slug
//	views.NewApplication("news", "News", routes,
//		views.WithNamespace("news"))
//
// Register them with a pages.Registry; pages reference them by label.
package views
