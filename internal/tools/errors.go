package tools

import (
	"errors"
	"fmt"

	"github.com/JaimeStill/porcus-tools/internal/relay"
)

// Domain errors for the tools system.
var (
	// ErrNotConfigured indicates a required API key is absent.
	// No network activity happens when it is returned.
	ErrNotConfigured = errors.New("API key not configured")

	// ErrValidation indicates a missing or malformed caller field.
	ErrValidation = errors.New("invalid request")
)

// Kind classifies failures into a closed set.
type Kind string

const (
	KindConfig     Kind = "config"
	KindValidation Kind = "validation"
	KindRemote     Kind = "remote"
	KindTransport  Kind = "transport"
	KindInternal   Kind = "internal"
)

// KindOf classifies err.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return KindConfig
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, relay.ErrRemoteStatus):
		return KindRemote
	case errors.Is(err, relay.ErrTransport):
		return KindTransport
	default:
		return KindInternal
	}
}

// Retryable reports whether repeating the identical call could succeed.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindTransport:
		return true
	case KindRemote:
		se, _ := relay.AsStatus(err)
		return se != nil && se.Retryable()
	default:
		return false
	}
}

func notConfigured(envVar string) error {
	return fmt.Errorf("%w. Please set %s environment variable.", ErrNotConfigured, envVar)
}

func missing(field string) error {
	return fmt.Errorf("%w: missing required field: %s", ErrValidation, field)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
