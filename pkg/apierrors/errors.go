// Package apierrors classifies failures of calls to the admin BFF so callers
// can branch on a stable code instead of inspecting transport details.
package apierrors

import "net/http"

// Code enumerates typed failure categories for BFF calls.
type Code string

const (
	// CodeNetwork means no HTTP response was received at all: connection
	// refused, timeout, DNS failure.
	CodeNetwork Code = "network_failure"
	// CodeUnauthorized is HTTP 401. It is the only status with a global side
	// effect (session teardown).
	CodeUnauthorized Code = "authorization_failure"
	// CodeServer is any HTTP 5xx.
	CodeServer Code = "server_failure"
	// CodeValidation is any HTTP 4xx other than 401.
	CodeValidation Code = "validation_failure"
	// CodeDecode means the response arrived but its body could not be decoded.
	CodeDecode Code = "decode_failure"
)

// Error wraps a failed BFF call with a stable code and whatever the server
// said about it. StatusCode is zero for network failures.
type Error struct {
	Code       Code
	Message    string
	StatusCode int
	Endpoint   string
	Method     string
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether the call never produced an HTTP response.
func (e *Error) IsNetwork() bool {
	return e.Code == CodeNetwork
}

// FromStatus maps an HTTP status to the failure code the caller should see.
func FromStatus(status int) Code {
	switch {
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status >= 500:
		return CodeServer
	default:
		return CodeValidation
	}
}
