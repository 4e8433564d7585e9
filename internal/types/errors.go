package types

import "fmt"

// ErrorKind classifies where a call failed
type ErrorKind string

const (
	KindConfig    ErrorKind = "config"
	KindTransport ErrorKind = "transport"
	KindRemote    ErrorKind = "remote"
	KindDecode    ErrorKind = "decode"
)

// Error represents an API error
type Error struct {
	Kind       ErrorKind              `json:"kind"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"statusCode"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Err        error                  `json:"-"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("error: %s", e.Code)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}
