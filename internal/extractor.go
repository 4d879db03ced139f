package internal

import "strings"

// ExtractorSource reads one candidate value from the request. ok is false
// when the source has nothing.
type ExtractorSource = func(Context) (value string, ok bool)

// Extractor is an ordered list of sources; the first that yields a value
// wins.
type Extractor []ExtractorSource

// NewExtractor returns an Extractor consulting sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor(sources)
}

// Extract returns the first non-empty value.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) { return present(c.Header(name)) }
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) { return present(c.Query(name)) }
}

// FromParam reads a router or page route parameter.
func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) { return present(c.Param(name)) }
}

// FromForm reads a form field.
func FromForm(name string) ExtractorSource {
	return func(c Context) (string, bool) { return present(c.Form(name)) }
}

// FromBearerToken reads the token of an "Authorization: Bearer" header.
// The scheme is matched case-insensitively.
func FromBearerToken() ExtractorSource {
	return func(c Context) (string, bool) {
		scheme, token, found := strings.Cut(c.Header("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "bearer") {
			return "", false
		}
		return present(strings.TrimSpace(token))
	}
}

func present(v string) (string, bool) { return v, v != "" }
