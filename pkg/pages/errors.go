package pages

import (
	"errors"
	"strings"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when a path resolves to no page or route.
	ErrNotFound = errors.New("pages: not found")

	// ErrAlreadyRegistered is returned when a view label is registered twice.
	ErrAlreadyRegistered = errors.New("pages: view already registered")

	// ErrNotRegistered is returned for unknown view labels and route names.
	ErrNotRegistered = errors.New("pages: not registered")

	// ErrPageNotFound is returned by repositories for unknown pages.
	ErrPageNotFound = errors.New("pages: page does not exist")

	ErrDuplicatePath = errors.New("pages: page path already exists")
	ErrDuplicateID   = errors.New("pages: page id already exists")
	ErrInvalidPath   = errors.New("pages: invalid page path")
	ErrStore         = errors.New("pages: store failure")
)

// Reasons reported by ResolveError.
const (
	ReasonTrailingSlash = "path must end with a slash"
	ReasonNoPage        = "no page matches"
	ReasonUnregistered  = "view is not registered"
	ReasonSubpages      = "view does not allow subpages"
	ReasonNoRoute       = "no application route matches"
)

// ResolveError describes a failed resolution. It unwraps to ErrNotFound.
type ResolveError struct {
	Path   string
	Reason string
	// Tried lists the page paths and application patterns that were
	// considered, most specific first.
	Tried []string
}

func (e *ResolveError) Error() string {
	var b strings.Builder
	b.WriteString(ErrNotFound.Error())
	b.WriteString(": ")
	b.WriteString(e.Path)
	if e.Reason != "" {
		b.WriteString(" (")
		b.WriteString(e.Reason)
		b.WriteString(")")
	}
	return b.String()
}

func (e *ResolveError) Unwrap() error {
	return ErrNotFound
}
