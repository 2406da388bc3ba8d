package router

import (
	"errors"
	"net/http"
)

// statusCoder is implemented by errors that carry an HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

// ForError picks the error page for err. The second result is false when
// err has no dedicated page (validation failures, conflicts, cancellations).
func ForError(err error) (Route, bool) {
	var sc statusCoder
	if err == nil || !errors.As(err, &sc) {
		return "", false
	}
	switch code := sc.HTTPStatus(); {
	case code == http.StatusUnauthorized:
		return Unauthorized, true
	case code == http.StatusNotFound:
		return NotFound, true
	case code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout:
		return ServiceUnavailable, true
	case code >= http.StatusInternalServerError:
		return ServerError, true
	}
	return "", false
}
