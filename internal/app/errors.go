package app

import (
	"errors"
	"fmt"
)

// ErrNoActiveProfile is returned when an operation needs an active profile
// and the store is empty.
var ErrNoActiveProfile = errors.New("no active profile")

// ErrNotFound marks lookups of records that do not exist on the active
// profile. Wrap it with the record kind and id.
var ErrNotFound = errors.New("not found")

// ValidationError reports a request that fails business validation. The web
// adapter maps it to a 400 with the field and message in the envelope.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
