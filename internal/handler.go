package internal

// Handler declares routes on a router. Declared routes are matched before
// the page tree, so a handler can shadow any page path.
//
// Example:
//
//	type feedHandler struct {
//	    store pages.Store
//	}
//
//	func (h *feedHandler) Routes(r reek.Router) {
//	    r.GET("/feed.xml", h.feed)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc handles a request. A non-nil error is passed to the
// ErrorHandler; page views are adapted to this signature by the page
// dispatcher.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc. Global middleware wraps page dispatch
// too, so it can read the resolved page after calling next.
//
// Example:
//
//	func staffOnly(next reek.HandlerFunc) reek.HandlerFunc {
//	    return func(c reek.Context) error {
//	        if c.Header("X-Staff") == "" {
//	            return c.Error(http.StatusForbidden, "staff only")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers and page views.
// StatusCode maps the error to the response status.
type ErrorHandler func(Context, error) error
