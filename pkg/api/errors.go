package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any authoritative 401 response. A stored token
// that triggers it is definitively invalid; transport failures never do.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a failure the server itself reported: either a success:false
// envelope or a non-2xx status with a decodable body. Its message is safe
// to surface to the user verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api: request failed (status %d)", e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match server-reported 401s too.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// IsTransport reports whether err is a network, timeout, or decode failure
// rather than an authoritative server response. Passive callers (token
// re-verification, message polling) keep their local state on transport
// failures and retry on the next cycle.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	return !errors.As(err, &apiErr) && !errors.Is(err, ErrUnauthorized)
}
