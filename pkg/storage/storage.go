// Package storage persists binary transform results on the local filesystem.
// Keys map to relative paths under a base directory; writes are atomic.
package storage

import (
	"context"
	"errors"

	"github.com/JaimeStill/porcus-tools/pkg/lifecycle"
)

// Storage errors returned by System implementations.
var (
	// ErrInvalidKey indicates the key is empty or escapes the base path.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrTooLarge indicates the object exceeds max_object_size.
	ErrTooLarge = errors.New("storage: object too large")
)

// System defines blob storage for transform results.
type System interface {
	// Store saves data at key, replacing any existing object.
	Store(ctx context.Context, key string, data []byte) error

	// Path resolves key to an absolute filesystem path.
	Path(ctx context.Context, key string) (string, error)

	// Start registers base directory creation with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}
