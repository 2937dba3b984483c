package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"io"
	"log/slog"
	"sync/atomic"
	"time"
)

// ContextKey is the type for values this package stores in a request
// context.
type ContextKey string

const (
	// MemberIDContextKey holds the authenticated member's UUID.
	MemberIDContextKey ContextKey = "memberID"

	// MemberEmailContextKey holds the authenticated member's email.
	MemberEmailContextKey ContextKey = "memberEmail"

	// TraceIDKey holds the request's trace ID.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the trace ID size in bytes; encoded it becomes 32
	// hex characters.
	TraceIDLength = 16
)

// fallbackCounter feeds the low half of fallback trace IDs so two requests
// in the same nanosecond still differ.
var fallbackCounter atomic.Uint64

// SetTraceID stamps ctx with a fresh trace ID. Log lines and error
// responses both carry it, which is what ties them together.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID returns the trace ID in ctx, or "" when there is none.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

func generateTraceID() string {
	return newTraceID(rand.Reader)
}

// newTraceID reads TraceIDLength bytes from r and hex-encodes them. When r
// cannot deliver, it degrades to a time-and-counter ID rather than failing
// the request.
func newTraceID(r io.Reader) string {
	b := make([]byte, TraceIDLength)
	if _, err := io.ReadFull(r, b); err != nil {
		slog.Error("failed to generate random trace ID",
			"error", err,
			"fallback", "time-based generation")
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID builds an ID from the clock and a process-local counter.
// Weaker than random bytes but unique within the process.
func fallbackTraceID() string {
	b := make([]byte, TraceIDLength)
	binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint64(b[8:], fallbackCounter.Add(1))
	return hex.EncodeToString(b)
}
