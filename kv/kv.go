// Package kv stores JSON documents by string key.
//
// A Store is the raw byte level backend (a directory, memory, Redis). The
// Adapter sits on top of it and implements the read-with-fallback and
// best-effort write policy the book relies on.
package kv

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Store is a raw key-value backend.
type Store interface {
	// Get returns the value stored at key, or an error matching ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

var (
	// ErrNotFound is returned by Store.Get for a missing key.
	ErrNotFound = errors.New("key not found")
	// ErrRead marks a stored value that exists but cannot be read or decoded.
	ErrRead = errors.New("storage read error")
	// ErrWrite marks a failed write.
	ErrWrite = errors.New("storage write error")
)

// IsNotFound reports whether err is a missing key error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func notFound(key string) error {
	return errors.Mark(errors.Newf("key %q not found", key), ErrNotFound)
}
