package types

import (
	"errors"
)

const (
	// DefaultBaseURL is the default Lunch Money API base URL
	DefaultBaseURL = "https://dev.lunchmoney.app"

	// TransactionsPath is the transaction listing endpoint
	TransactionsPath = "/v1/transactions"

	// APIKeyEnv names the environment variable holding the bearer token
	APIKeyEnv = "LUNCH_MONEY_API_KEY"

	// UserAgent is the user agent string
	UserAgent = "lunchmoney-go/0.1.0"
)

// Common errors
var (
	// ErrMissingAPIKey is returned when no API key is configured
	ErrMissingAPIKey = errors.New(APIKeyEnv + " environment variable is required")

	// ErrNotAuthenticated is returned when the API rejects the token
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout is returned on timeout
	ErrTimeout = errors.New("request timeout")

	// ErrNotFound is returned when resource not found
	ErrNotFound = errors.New("resource not found")

	// ErrServerError is returned for server errors
	ErrServerError = errors.New("server error")
)
