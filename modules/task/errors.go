package task

import (
	"errors"
)

var (
	// ErrAuthenticationRequired is returned by mutating operations when
	// no identity is present.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrStorageUnavailable is returned when the blob store cannot be
	// reached at module start.
	ErrStorageUnavailable = errors.New("task storage unavailable")
)

// FieldError is a single validation failure, addressed to the form field
// that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
