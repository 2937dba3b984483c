package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "a fresh context has no trace ID")

	stamped := SetTraceID(ctx)
	traceID := GetTraceID(stamped)
	require.Len(t, traceID, 32)
	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err)

	assert.Empty(t, GetTraceID(ctx), "the parent context must stay untouched")
}

func TestGetTraceIDWrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)

	assert.Empty(t, GetTraceID(ctx))
}

func TestGenerateTraceIDUniqueness(t *testing.T) {
	const n = 1000
	seen := make(map[string]struct{}, n)

	for i := 0; i < n; i++ {
		id := generateTraceID()
		require.Len(t, id, 32)

		_, dup := seen[id]
		require.False(t, dup, "trace IDs must not repeat")
		seen[id] = struct{}{}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestNewTraceIDFallsBackOnReadFailure(t *testing.T) {
	id := newTraceID(failingReader{})

	require.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
}

func TestNewTraceIDFallsBackOnShortRead(t *testing.T) {
	id := newTraceID(io.LimitReader(rand.Reader, TraceIDLength/2))

	require.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
}

func TestFallbackTraceIDUniqueness(t *testing.T) {
	const n = 100
	seen := make(map[string]struct{}, n)

	for i := 0; i < n; i++ {
		id := fallbackTraceID()
		require.Len(t, id, 32)

		_, dup := seen[id]
		require.False(t, dup, "the counter half keeps same-nanosecond IDs distinct")
		seen[id] = struct{}{}
	}
}
