package views

import "errors"

var (
	ErrForbidden       = errors.New("views: forbidden")
	ErrContentNotFound = errors.New("views: content not found")
	ErrNoTemplate      = errors.New("views: no template found")
	ErrRender          = errors.New("views: render failed")
)
