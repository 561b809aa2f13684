package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid input")

	// ErrAlreadySubmitted rejects a second submission for the same
	// (student, quiz) pair.
	ErrAlreadySubmitted = fmt.Errorf("quiz already submitted: %w", ErrConflict)

	// ErrIncompleteSubmission gates submit until every question has a
	// selected option.
	ErrIncompleteSubmission = fmt.Errorf("all questions must be answered before submitting: %w", ErrInvalid)
)

// Invalid wraps a field-level validation message in ErrInvalid.
func Invalid(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalid)
}
