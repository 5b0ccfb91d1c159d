package provider

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider operations.
var (
	// ErrUnknownProvider indicates the requested provider is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingAPIKey indicates no API key was configured for the provider.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrUnavailable indicates the LLM service is unavailable.
	ErrUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the request was rate limited upstream.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidRequest indicates the request is malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrTimeout indicates the request timed out.
	ErrTimeout = errors.New("request timed out")
)

// Error wraps provider errors with context.
type Error struct {
	Provider  string // Provider name ("gemini", "openrouter", ...)
	Op        string // Operation that failed ("complete")
	Err       error  // Underlying error
	Retryable bool   // Whether the error is likely transient
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new provider error.
func NewError(provider, op string, err error, retryable bool) *Error {
	return &Error{Provider: provider, Op: op, Err: err, Retryable: retryable}
}

// IsRetryable checks if an error is likely transient and worth retrying.
func IsRetryable(err error) bool {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr.Retryable
	}
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrTimeout)
}

// StatusError classifies an HTTP status code into a provider error.
func StatusError(provider, op string, status int, body string) *Error {
	var base error
	retryable := false
	switch {
	case status == 429:
		base, retryable = ErrRateLimited, true
	case status >= 500:
		base, retryable = ErrUnavailable, true
	case status == 400:
		base = ErrInvalidRequest
	default:
		base = fmt.Errorf("unexpected status %d", status)
	}
	return NewError(provider, op, fmt.Errorf("%w: HTTP %d: %s", base, status, body), retryable)
}
