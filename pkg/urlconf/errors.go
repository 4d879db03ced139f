package urlconf

import "errors"

var (
	ErrNoMatch          = errors.New("urlconf: no route matches path")
	ErrInvalidPattern   = errors.New("urlconf: invalid route pattern")
	ErrDuplicateName    = errors.New("urlconf: duplicate route name")
	ErrDuplicatePattern = errors.New("urlconf: duplicate route pattern")
	ErrMissingParam     = errors.New("urlconf: missing pattern parameter")
	ErrInvalidParam     = errors.New("urlconf: parameter does not satisfy pattern")
)

// NoMatchError reports a path that matched none of the tried patterns.
// It unwraps to ErrNoMatch.
type NoMatchError struct {
	Path  string
	Tried []string
}

func (e *NoMatchError) Error() string {
	return ErrNoMatch.Error() + ": " + e.Path
}

func (e *NoMatchError) Unwrap() error {
	return ErrNoMatch
}
