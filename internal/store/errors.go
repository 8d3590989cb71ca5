package store

import "github.com/listenupapp/listenup-seed/internal/errors"

// Sentinel errors.
var (
	ErrAlreadyExists = errors.AlreadyExists("resource already exists")

	ErrInvalidInput = errors.Validation("invalid input")
)
