package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the repositories and use cases. Handlers
// map them onto HTTP statuses with errors.Is.
var (
	ErrNotFound         = errors.New("entity not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrValidationFailed = errors.New("validation failed")
	ErrSlugTaken        = errors.New("slug already taken")
	ErrDownloadLimited  = errors.New("download limit reached")
)

// ValidationError carries the field that failed along with the reason,
// so API responses can point clients at the offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
