package dataloader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes a failed data-loader operation.
type ErrorKind string

const (
	// KindAuth indicates a missing or rejected API key.
	KindAuth ErrorKind = "auth"
	// KindNotFound indicates an unknown series ID or category.
	KindNotFound ErrorKind = "not_found"
	// KindRateLimit indicates the source rejected the request for quota
	// reasons (HTTP 429 class).
	KindRateLimit ErrorKind = "rate_limit"
	// KindNetwork indicates a transport-level failure (connection refused,
	// DNS, timeout, canceled context).
	KindNetwork ErrorKind = "network"
	// KindServer indicates a source-side error (HTTP 5xx).
	KindServer ErrorKind = "server"
	// KindMalformed indicates the response arrived but did not have the
	// expected JSON shape.
	KindMalformed ErrorKind = "malformed"
	// KindValidation indicates the request was rejected locally before any
	// network call (bad enum value, inverted date range, empty series ID).
	KindValidation ErrorKind = "validation"
)

// Error is the structured error returned by data-loader operations. It
// carries the taxonomy kind, the offending series ID where one applies, and
// the underlying cause for unwrapping.
type Error struct {
	Kind       ErrorKind
	Retryable  bool
	StatusCode int
	SeriesID   string
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	sb.WriteString(" error")
	if e.StatusCode > 0 {
		fmt.Fprintf(&sb, " (status %d)", e.StatusCode)
	}
	if e.SeriesID != "" {
		fmt.Fprintf(&sb, " for series %s", e.SeriesID)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the taxonomy kind of err, or the empty string if err is
// not a data-loader error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// NewAuthError creates an authentication error.
func NewAuthError(message string) *Error {
	return &Error{
		Kind:    KindAuth,
		Message: message,
	}
}

// NewNotFoundError creates a not-found error for the given series ID.
func NewNotFoundError(seriesID string) *Error {
	return &Error{
		Kind:     KindNotFound,
		SeriesID: seriesID,
		Message:  "series not found",
	}
}

// NewRateLimitError creates a rate-limit error.
func NewRateLimitError(statusCode int) *Error {
	return &Error{
		Kind:       KindRateLimit,
		Retryable:  true,
		StatusCode: statusCode,
		Message:    "rate limit exceeded",
	}
}

// NewNetworkError creates a transport-level error.
func NewNetworkError(cause error) *Error {
	return &Error{
		Kind:      KindNetwork,
		Retryable: true,
		Message:   "network request failed",
		Cause:     cause,
	}
}

// NewServerError creates a source-side server error.
func NewServerError(statusCode int) *Error {
	return &Error{
		Kind:       KindServer,
		Retryable:  true,
		StatusCode: statusCode,
		Message:    "server returned an error",
	}
}

// NewMalformedError creates an unexpected-response-shape error.
func NewMalformedError(message string, cause error) *Error {
	return &Error{
		Kind:    KindMalformed,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a local request-validation error.
func NewValidationError(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
	}
}

// ClassifyStatus maps a non-success HTTP status and the source's error
// message into the appropriate taxonomy kind. The source reports both bad
// API keys and unknown series as HTTP 400, distinguished only by the
// message text.
func ClassifyStatus(statusCode int, message string) *Error {
	switch {
	case statusCode == 429:
		return NewRateLimitError(statusCode)
	case statusCode >= 500:
		return NewServerError(statusCode)
	case statusCode == 400 && strings.Contains(message, "api_key"):
		return &Error{
			Kind:       KindAuth,
			StatusCode: statusCode,
			Message:    firstNonEmpty(message, "API key rejected"),
		}
	case statusCode == 404 || (statusCode == 400 && strings.Contains(message, "does not exist")):
		return &Error{
			Kind:       KindNotFound,
			StatusCode: statusCode,
			Message:    firstNonEmpty(message, "not found"),
		}
	case statusCode >= 400:
		return &Error{
			Kind:       KindValidation,
			StatusCode: statusCode,
			Message:    firstNonEmpty(message, fmt.Sprintf("client error: HTTP %d", statusCode)),
		}
	default:
		return &Error{
			Kind:       KindMalformed,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		}
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
