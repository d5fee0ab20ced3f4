package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned for unknown or already finished sessions.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuestionMismatch means the client answered a question other than the pending one.
	ErrQuestionMismatch = errors.New("question does not match the pending question")
	// ErrValidation marks missing or malformed request fields.
	ErrValidation = errors.New("validation failed")
	// ErrPoolExhausted is returned when no unused question is left and repeats are disabled.
	ErrPoolExhausted = errors.New("question pool exhausted")
)

// GenerationError reports that a question pool could not be produced.
type GenerationError struct {
	Topic string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate question pool for %q: %v", e.Topic, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Invalid wraps ErrValidation with a field-specific message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
