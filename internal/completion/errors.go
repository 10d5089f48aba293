package completion

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies why a completion request failed
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindAuthentication
	KindNetwork
	KindMalformedResponse
	KindRateLimit
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindNetwork:
		return "network"
	case KindMalformedResponse:
		return "malformed-response"
	case KindRateLimit:
		return "rate-limit"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

var (
	// ErrMissingAPIKey is returned on the first request when no key is configured
	ErrMissingAPIKey = errors.New("API key not configured")

	// ErrEmptyResponse is returned when the service answers without any text
	ErrEmptyResponse = errors.New("no completion text returned")
)

// Error is a failed completion request
type Error struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s completion failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind of err, or KindUnknown when err does not wrap an *Error
func KindOf(err error) ErrorKind {
	var completionErr *Error
	if errors.As(err, &completionErr) {
		return completionErr.Kind
	}
	return KindUnknown
}

func newError(provider string, kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Provider: provider, Err: err}
}

// kindFromStatus maps an HTTP status code to an ErrorKind
func kindFromStatus(status int) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return KindAuthentication
	case status == 429:
		return KindRateLimit
	case status >= 500:
		return KindUnavailable
	default:
		return KindUnknown
	}
}

// kindFromTransport recognizes timeouts and connection failures
func kindFromTransport(err error) (ErrorKind, bool) {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork, true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork, true
	}
	return KindUnknown, false
}
