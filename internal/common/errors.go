// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Configuration errors.
	ErrMissingCredentials = errors.New("missing API credentials")
	ErrMissingEndpoints   = errors.New("missing endpoints file")
	ErrInvalidConfig      = errors.New("invalid configuration")

	// Vendor API errors.
	ErrFetchFailed   = errors.New("opportunity fetch failed")
	ErrRateLimit     = errors.New("rate limit exceeded")
	ErrDocumentFetch = errors.New("document fetch failed")

	// LLM stage errors.
	ErrBatchSubmission = errors.New("batch submission failed")
	ErrBatchJobFailed  = errors.New("batch job did not succeed")
	ErrAgentCall       = errors.New("agent call failed")

	// Gate errors.
	ErrEmptyPack = errors.New("pattern pack is empty")
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

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
