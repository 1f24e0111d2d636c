package relay

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRemoteStatus indicates the remote service answered with a non-2xx status.
	ErrRemoteStatus = errors.New("remote request failed")

	// ErrTransport indicates no usable response was received: DNS failure,
	// refused or reset connection, timeout, or an oversized body.
	ErrTransport = errors.New("remote unreachable")
)

// StatusError carries a non-2xx remote status and the raw response body.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d", e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrRemoteStatus
}

// Retryable reports whether the remote status is worth retrying:
// 408, 429 and every 5xx.
func (e *StatusError) Retryable() bool {
	switch {
	case e.Status == http.StatusRequestTimeout:
		return true
	case e.Status == http.StatusTooManyRequests:
		return true
	case e.Status >= 500:
		return true
	default:
		return false
	}
}

// AsStatus extracts a *StatusError from err.
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
