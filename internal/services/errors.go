package services

import "errors"

// Sentinel errors mapped onto HTTP statuses by the handlers.
var (
	ErrValidation    = errors.New("validation failed") // 400
	ErrAlreadyExists = errors.New("already exists")    // 400
	ErrForbidden     = errors.New("forbidden")         // 403
	ErrNotFound      = errors.New("not found")         // 404
	ErrTooLarge      = errors.New("payload too large") // 413
)
