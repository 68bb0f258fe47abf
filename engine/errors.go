package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a generation failure so the UI can pick the right
// remediation: fix configuration, reselect a credential, or just retry with
// different input. The module itself never retries.
type ErrorKind string

const (
	// KindConfiguration marks a missing credential or endpoint, detected
	// before any network call.
	KindConfiguration ErrorKind = "configuration"
	// KindAuthorization marks a provider-side credential or billing
	// rejection. Callers should prompt for credential reselection.
	KindAuthorization ErrorKind = "authorization"
	// KindProviderResponse marks a non-success status or malformed body.
	KindProviderResponse ErrorKind = "provider_response"
	// KindNoImageReturned marks a structurally successful response with no
	// extractable image payload. For user messaging it is a special case of
	// a provider-response failure.
	KindNoImageReturned ErrorKind = "no_image_returned"
)

// Error is the classified failure every adapter returns. Status is the HTTP
// status when one was observed, zero otherwise.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError builds a classified error wrapping an optional cause.
func NewError(kind ErrorKind, status int, message string, cause error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, cause: cause}
}

// ConfigurationError reports a missing credential or endpoint.
func ConfigurationError(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// KindOf extracts the classification from an error chain. Unclassified errors
// report KindProviderResponse, the generic bucket.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindProviderResponse
}

// IsKind reports whether the error chain carries the given classification.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// PermissionDenied reports whether a serialized provider error looks like a
// credential or billing rejection. The markers mirror what the provider
// actually emits for key and quota problems.
func PermissionDenied(message string) bool {
	if strings.Contains(message, "PERMISSION_DENIED") || strings.Contains(message, "403") {
		return true
	}
	return strings.Contains(strings.ToLower(message), "permission")
}
