package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoBaseURL is returned when a relative path is requested without a base
// URL configured.
var ErrNoBaseURL = errors.New("transport: base url is required for relative paths")

// Error describes a request that did not complete with a 2xx status. Status is
// zero when no HTTP response was received at all (connection refused, DNS
// failure, timeout).
type Error struct {
	Status int
	Body   []byte
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "transport: <nil>"
	}
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("transport: no response: %v", e.Err)
		}
		return "transport: no response"
	}
	if e.Err != nil {
		return fmt.Sprintf("transport: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("transport: status %d %s", e.Status, http.StatusText(e.Status))
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NoResponse reports whether the failure happened before any HTTP response.
func (e *Error) NoResponse() bool {
	return e != nil && e.Status == 0
}
