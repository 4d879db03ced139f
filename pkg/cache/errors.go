package cache

import "errors"

var (
	// ErrNotFound is returned for missing and expired keys.
	ErrNotFound = errors.New("cache: entry not found")

	ErrClosed    = errors.New("cache: closed")
	ErrMarshal   = errors.New("cache: failed to marshal value")
	ErrUnmarshal = errors.New("cache: failed to unmarshal value")
)
