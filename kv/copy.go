package kv

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Copy copies the raw values of keys from one store to another. Keys missing
// from the source are skipped. It returns the number of values copied.
func Copy(ctx context.Context, from, to Store, keys ...string) (int, error) {
	n := 0
	for _, key := range keys {
		v, err := from.Get(ctx, key)
		if IsNotFound(err) {
			continue
		}
		if err != nil {
			return n, errors.Mark(errors.Wrapf(err, "copying %q", key), ErrRead)
		}
		if err := to.Set(ctx, key, v); err != nil {
			return n, errors.Mark(errors.Wrapf(err, "copying %q", key), ErrWrite)
		}
		n++
	}
	return n, nil
}

// Empty reports whether none of the keys has a value in s.
func Empty(ctx context.Context, s Store, keys ...string) (bool, error) {
	for _, key := range keys {
		_, err := s.Get(ctx, key)
		if IsNotFound(err) {
			continue
		}
		if err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}
