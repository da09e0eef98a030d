package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse marks a successful reply whose body does not match
// the expected payload. The server contract is trusted, so this signals a
// programming error rather than a condition to recover from.
var ErrMalformedResponse = errors.New("remote: malformed response")

// ServiceError is a non-2xx reply. The raw body is kept verbatim.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("API %d: %s", e.Status, e.Body)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// IsNotFound reports a 404 ServiceError.
func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

// IsUnauthorized reports a 401 ServiceError.
func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }
