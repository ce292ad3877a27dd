package models

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates an operation targeted a record that does not
// exist. Handlers map it to a 404 response.
var ErrNotFound = errors.New("not found")

// ValidationError indicates malformed or out-of-range input. Handlers map
// it to a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
