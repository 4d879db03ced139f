package pagestore

import "errors"

var (
	ErrSeed    = errors.New("pagestore: invalid seed")
	ErrPayload = errors.New("pagestore: invalid notification payload")
)
