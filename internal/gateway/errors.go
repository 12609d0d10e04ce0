package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed gateway call.
type Kind int

const (
	// KindUnavailable means the gateway could not be reached.
	KindUnavailable Kind = iota + 1
	// KindUpstream means the gateway answered with a non-2xx status.
	KindUpstream
	// KindDecode means the gateway answered 2xx with a body we could not read.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindUpstream:
		return "upstream"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method that fails.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUpstream:
		return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Message)
	default:
		if e.Err != nil {
			return fmt.Sprintf("gateway %s: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("gateway %s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status a proxy should answer with for this failure.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUpstream:
		if e.StatusCode >= 400 {
			return e.StatusCode
		}
		return http.StatusBadGateway
	case KindDecode:
		return http.StatusBadGateway
	default:
		return http.StatusServiceUnavailable
	}
}

// StatusOf returns the proxy status for any error, 503 when err is not an *Error.
func StatusOf(err error) int {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.HTTPStatus()
	}
	return http.StatusServiceUnavailable
}

// MessageOf returns the human-readable part of a gateway error.
func MessageOf(err error) string {
	var gwErr *Error
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
