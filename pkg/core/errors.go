// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every precondition violation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfiguration is matched by every reference data validation failure.
	ErrConfiguration = errors.New("configuration error")
)

// InvalidInputError reports a violated precondition on a named input.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInput builds an InvalidInputError with a formatted reason.
func NewInvalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports reference data that failed schema validation.
// Row is 1-based and counts the header line; zero means the whole source.
type ConfigurationError struct {
	Source string
	Row    int
	Column string
	Reason string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("%s: row %d, column %q: %s", e.Source, e.Row, e.Column, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %s", e.Source, e.Column, e.Reason)
	case e.Row > 0:
		return fmt.Sprintf("%s: row %d: %s", e.Source, e.Row, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Source, e.Reason)
	}
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
