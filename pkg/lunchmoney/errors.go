package lunchmoney

import (
	"errors"
	"net/url"

	internalTypes "github.com/eshaffer321/lunchmoney-go/internal/types"
)

// Error represents an API error
type Error = internalTypes.Error

// ErrorKind classifies where a call failed
type ErrorKind = internalTypes.ErrorKind

const (
	// KindConfig means the client was not configured to make the call
	KindConfig = internalTypes.KindConfig

	// KindTransport means the request never produced an HTTP response
	KindTransport = internalTypes.KindTransport

	// KindRemote means the API answered with a non-2xx status
	KindRemote = internalTypes.KindRemote

	// KindDecode means the response body was not valid JSON
	KindDecode = internalTypes.KindDecode
)

var (
	ErrMissingAPIKey    = internalTypes.ErrMissingAPIKey
	ErrNotAuthenticated = internalTypes.ErrNotAuthenticated
	ErrRateLimited      = internalTypes.ErrRateLimited
	ErrTimeout          = internalTypes.ErrTimeout
	ErrNotFound         = internalTypes.ErrNotFound
	ErrServerError      = internalTypes.ErrServerError
)

// KindOf returns the kind of an API error, or "" for other errors
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsConfigError checks if the call failed before reaching the network
func IsConfigError(err error) bool {
	return KindOf(err) == KindConfig || errors.Is(err, ErrMissingAPIKey)
}

// IsAuthError checks if error is authentication related
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrMissingAPIKey)
}

// Message describes err without request plumbing. A *url.Error is reduced
// to its cause, so a dropped connection reads "socket hang up" rather than
// `Get "https://...": socket hang up`.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
