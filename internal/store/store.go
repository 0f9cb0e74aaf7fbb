package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the requested key has no value.
var ErrNotFound = errors.New("key not found")

// KV is a durable string-keyed slot store. Values are opaque strings; callers
// decide on the encoding.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close cleans up resources.
	Close() error
}
