package kv

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type profile struct {
	Name string `json:"name"`
	Next int    `json:"next"`
}

// failing is a Store whose every operation fails.
type failing struct{}

func (failing) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (failing) Set(context.Context, string, []byte) error   { return errors.New("disk on fire") }

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return zap.New(core), logs
}

func TestLoadFallback(t *testing.T) {
	ctx := context.Background()
	fallback := profile{Name: "default", Next: 1}

	tests := []struct {
		name     string
		stored   *string
		want     profile
		warnings int
	}{
		{name: "missing", stored: nil, want: fallback},
		{name: "null", stored: ptr("null"), want: fallback},
		{name: "empty", stored: ptr(""), want: fallback},
		{name: "corrupt", stored: ptr(`{"name":`), want: fallback, warnings: 1},
		{name: "wrong type", stored: ptr(`[1,2]`), want: fallback, warnings: 1},
		{name: "valid", stored: ptr(`{"name":"acme","next":7}`), want: profile{Name: "acme", Next: 7}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, logs := observed()
			m := NewMemory()
			if tc.stored != nil {
				require.NoError(t, m.Set(ctx, "k", []byte(*tc.stored)))
			}
			a := NewAdapter(m, log)
			assert.Equal(t, tc.want, Load(ctx, a, "k", fallback))
			assert.Equal(t, tc.warnings, logs.Len())
			assert.Len(t, a.ReadFailures(), tc.warnings)
		})
	}
}

func TestLoadUnavailableStore(t *testing.T) {
	log, logs := observed()
	a := NewAdapter(failing{}, log)

	got := Load(context.Background(), a, "k", []string{"x"})
	assert.Equal(t, []string{"x"}, got)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "k", entry.ContextMap()["key"])
}

func TestSaveSwallowsErrors(t *testing.T) {
	log, logs := observed()
	a := NewAdapter(failing{}, log)

	assert.NotPanics(t, func() { a.Save(context.Background(), "k", profile{Name: "x"}) })
	assert.Equal(t, 1, logs.Len())
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemory(), nil)
	a.Save(ctx, "k", profile{Name: "acme", Next: 3})
	assert.Equal(t, profile{Name: "acme", Next: 3}, Load(ctx, a, "k", profile{}))
}

func ptr(s string) *string { return &s }

func TestReadFailures(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "corrupt", []byte(`{"name":`)))
	require.NoError(t, m.Set(ctx, "ok", []byte(`{"name":"acme"}`)))

	a := NewAdapter(m, nil)
	Load(ctx, a, "ok", profile{})
	Load(ctx, a, "missing", profile{})
	Load(ctx, a, "corrupt", profile{})
	assert.Equal(t, []string{"corrupt"}, a.ReadFailures())

	b := NewAdapter(failing{}, nil)
	Load(ctx, b, "k", profile{})
	assert.Equal(t, []string{"k"}, b.ReadFailures())
}
