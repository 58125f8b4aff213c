package kv

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Adapter reads and writes JSON values in a Store.
//
// Reads never fail: a missing value yields the caller's fallback, an
// unreadable or corrupt one too, after a warning is logged. Writes are best
// effort, failures are logged and swallowed.
type Adapter struct {
	store  Store
	log    *zap.Logger
	failed []string
}

// NewAdapter returns an adapter over s. A nil logger discards logs.
func NewAdapter(s Store, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{store: s, log: log}
}

// Store returns the underlying backend.
func (a *Adapter) Store() Store { return a.store }

// Load decodes the value at key, or returns fallback when it is missing,
// null, unreadable or not a valid T.
func Load[T any](ctx context.Context, a *Adapter, key string, fallback T) T {
	b, err := a.store.Get(ctx, key)
	if IsNotFound(err) {
		return fallback
	}
	if err != nil {
		a.readFailed(key, err)
		return fallback
	}
	if len(bytes.TrimSpace(b)) == 0 || bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return fallback
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		a.readFailed(key, errors.Wrap(err, "corrupt value"))
		return fallback
	}
	return v
}

func (a *Adapter) readFailed(key string, err error) {
	a.failed = append(a.failed, key)
	err = errors.Mark(errors.Wrapf(err, "read %q", key), ErrRead)
	a.log.Warn("cannot read stored value, using default", zap.String("key", key), zap.Error(err))
}

// ReadFailures lists the keys that could not be read so far, in order. Their
// stored value is still intact until something is saved over it.
func (a *Adapter) ReadFailures() []string { return a.failed }

// Save stores v at key as JSON. Failures are logged, not returned.
func (a *Adapter) Save(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err == nil {
		err = a.store.Set(ctx, key, b)
	}
	if err != nil {
		err = errors.Mark(errors.Wrapf(err, "write %q", key), ErrWrite)
		a.log.Warn("cannot store value, change not persisted", zap.String("key", key), zap.Error(err))
	}
}
