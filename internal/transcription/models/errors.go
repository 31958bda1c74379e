package models

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid arguments")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrMisconfigured     = errors.New("store misconfigured")
	ErrMissingCoordinate = errors.New("missing coordinate")
)
