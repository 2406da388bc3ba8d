package transport

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest      = errors.New("invalid request")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("conflict")
	ErrTooManyRequests = errors.New("too many requests")
	ErrServer          = errors.New("server error")
	ErrTimeout         = errors.New("request timed out")
	ErrNetwork         = errors.New("network error")
	ErrRequestFailed   = errors.New("request failed")
)

// StatusError is a non-2xx reply as received from the server.
type StatusError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

func (e *StatusError) HTTPStatus() int { return e.Status }

// RequestError is the normalized error returned to callers.
// Kind is one of the package sentinels; Message keeps the server's text.
type RequestError struct {
	Kind    error
	Status  int
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Kind == ErrRequestFailed && e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *RequestError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// HTTPStatus reports the reply status; transport failures report 503.
func (e *RequestError) HTTPStatus() int {
	if e.Kind == ErrNetwork || e.Kind == ErrTimeout {
		return http.StatusServiceUnavailable
	}
	return e.Status
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return ErrBadRequest
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status == http.StatusTooManyRequests:
		return ErrTooManyRequests
	case status >= http.StatusInternalServerError:
		return ErrServer
	}
	return ErrRequestFailed
}

// IsUnauthorized reports whether err is a raw 401 reply.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusUnauthorized
}

// Message returns the text to show a user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}
