// Package kv provides the short-lived key/value storage used for OAuth
// flow state, authorization code grants, and registered clients. Keys
// carry a TTL and expire server-side.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist or has expired.
var ErrNotFound = errors.New("key not found")

// Store is a networked key/value store with per-key TTL.
type Store interface {
	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// GetDel atomically returns and removes the value stored under key,
	// or ErrNotFound. Two concurrent callers cannot both observe the
	// same value.
	GetDel(ctx context.Context, key string) (string, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
