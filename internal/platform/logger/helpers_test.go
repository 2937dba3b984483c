package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogBuffer collects log output for assertions. Safe for concurrent
// writers, which matters for handlers exercised under parallel subtests.
type TestLogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *TestLogBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// GetLogEntries decodes the buffer as a stream of JSON records, one per
// log line.
func (b *TestLogBuffer) GetLogEntries() ([]map[string]interface{}, error) {
	decoder := json.NewDecoder(strings.NewReader(b.String()))

	var entries []map[string]interface{}
	for {
		var entry map[string]interface{}
		if err := decoder.Decode(&entry); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetTestLogger returns a debug-level JSON logger writing into a fresh
// TestLogBuffer.
func GetTestLogger(t *testing.T) (*slog.Logger, *TestLogBuffer) {
	t.Helper()

	buf := &TestLogBuffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), buf
}

// CaptureLogs runs fn with a capturing logger and returns everything it
// logged.
func CaptureLogs(t *testing.T, fn func(*slog.Logger)) string {
	t.Helper()

	log, buf := GetTestLogger(t)
	fn(log)
	return buf.String()
}

// LogCaptureContext bundles a context carrying a capturing logger with the
// buffer behind it, for testing code that logs via FromContext.
type LogCaptureContext struct {
	Context context.Context
	Logger  *slog.Logger
	Buffer  *TestLogBuffer
}

// NewLogCaptureContext builds a LogCaptureContext at debug level.
func NewLogCaptureContext(t *testing.T) *LogCaptureContext {
	t.Helper()

	log, buf := GetTestLogger(t)
	return &LogCaptureContext{
		Context: WithLogger(context.Background(), log),
		Logger:  log,
		Buffer:  buf,
	}
}

// AssertLogContains fails the test when the captured output lacks content.
func AssertLogContains(t *testing.T, buf *TestLogBuffer, content string) {
	t.Helper()

	logs := buf.String()
	assert.Contains(t, logs, content, "log output:\n%s", logs)
}

// AssertLogField fails the test unless some captured record carries the
// field with the expected value.
func AssertLogField(t *testing.T, buf *TestLogBuffer, field string, expected interface{}) {
	t.Helper()

	entries, err := buf.GetLogEntries()
	require.NoError(t, err, "log output must be JSON records")
	require.NotEmpty(t, entries, "no log records captured")

	for _, entry := range entries {
		if value, ok := entry[field]; ok && value == expected {
			return
		}
	}
	t.Errorf("no log record has %s=%v\nlogs:\n%s", field, expected, buf.String())
}
