package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/hyeonm/finmart-api/internal/ciutil"
)

// CIHandler wraps a JSON handler and stamps every record with pipeline
// metadata (provider, run, commit) plus a sub-second timestamp, so log
// lines from CI runs can be traced back to a build and ordered within
// the same millisecond.
type CIHandler struct {
	handler   slog.Handler
	metadata  map[string]string
	addSource bool
}

// NewCIHandler builds a CIHandler writing JSON records to out. When opts
// request source locations, this handler attaches them itself so the
// reported frames point at the logging call site rather than at the
// wrapper.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	inner := slog.HandlerOptions{}
	if opts != nil {
		inner = *opts
	}
	addSource := inner.AddSource
	inner.AddSource = false

	return &CIHandler{
		handler:   slog.NewJSONHandler(out, &inner),
		metadata:  collectCIMetadata(),
		addSource: addSource,
	}
}

// collectCIMetadata reads the pipeline identifiers the CI provider
// exposes through the environment. Outside CI it returns an empty map,
// which keeps local log lines clean.
func collectCIMetadata() map[string]string {
	metadata := make(map[string]string)

	if !ciutil.IsCI() {
		return metadata
	}

	metadata["ci"] = "true"

	switch {
	case ciutil.IsGitHubActions():
		metadata["ci_provider"] = "github-actions"
		for key, env := range map[string]string{
			"ci_repository": "GITHUB_REPOSITORY",
			"ci_run_id":     "GITHUB_RUN_ID",
			"ci_sha":        "GITHUB_SHA",
			"ci_ref":        "GITHUB_REF_NAME",
		} {
			if v := os.Getenv(env); v != "" {
				metadata[key] = v
			}
		}
	case ciutil.IsGitLabCI():
		metadata["ci_provider"] = "gitlab-ci"
		for key, env := range map[string]string{
			"ci_repository":  "CI_PROJECT_PATH",
			"ci_pipeline_id": "CI_PIPELINE_ID",
			"ci_sha":         "CI_COMMIT_SHA",
			"ci_ref":         "CI_COMMIT_REF_NAME",
		} {
			if v := os.Getenv(env); v != "" {
				metadata[key] = v
			}
		}
	}

	return metadata
}

// Enabled implements slog.Handler.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements slog.Handler.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{
		handler:   h.handler.WithAttrs(attrs),
		metadata:  h.metadata,
		addSource: h.addSource,
	}
}

// WithGroup implements slog.Handler.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{
		handler:   h.handler.WithGroup(name),
		metadata:  h.metadata,
		addSource: h.addSource,
	}
}

// Handle stamps the record and forwards it to the inner JSON handler.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	stamped := record.Clone()

	if h.addSource && record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		stamped.AddAttrs(
			slog.String("source_file", frame.File),
			slog.Int("source_line", frame.Line),
			slog.String("source_func", frame.Function),
		)
	}

	for key, value := range h.metadata {
		stamped.AddAttrs(slog.String(key, value))
	}

	// Sub-second component for ordering records emitted within the same
	// millisecond.
	stamped.AddAttrs(slog.Int64("timestamp_nano", stamped.Time.UnixNano()%int64(time.Second)))

	return h.handler.Handle(ctx, stamped)
}

// TestFailureLogger emits machine-scannable failure and skip records for
// integration test harnesses running under CI.
type TestFailureLogger struct {
	logger *slog.Logger
}

// NewTestFailureLogger creates a TestFailureLogger on top of baseLogger.
func NewTestFailureLogger(baseLogger *slog.Logger) *TestFailureLogger {
	return &TestFailureLogger{logger: baseLogger}
}

// LogTestFailure records a failed test with its error and any extra
// diagnostic fields.
func (tfl *TestFailureLogger) LogTestFailure(
	ctx context.Context,
	testName string,
	err error,
	details map[string]interface{},
) {
	attrs := []any{
		"test_name", testName,
		"test_status", "failed",
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	for k, v := range details {
		attrs = append(attrs, k, v)
	}

	tfl.logger.ErrorContext(ctx, "TEST FAILURE", attrs...)
}

// LogTestSkip records a skipped test together with the reason, so CI log
// scans can tell deliberate skips from silently missing coverage.
func (tfl *TestFailureLogger) LogTestSkip(ctx context.Context, testName string, reason string) {
	tfl.logger.WarnContext(ctx, "TEST SKIPPED",
		"test_name", testName,
		"test_status", "skipped",
		"reason", reason,
	)
}
