// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Matching errors.
	ErrNoDescription = errors.New("no description found in @context")

	// Derivation errors. These are absorbed per rule and never abort the
	// pipeline.
	ErrMissingInputs    = errors.New("missing required inputs")
	ErrInvalidInputType = errors.New("invalid input types")

	// Catalog errors.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// Storage errors.
	ErrNotFound = errors.New("not found")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
