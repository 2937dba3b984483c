package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hyeonm/finmart-api/internal/redact"
)

// Status strings carried by every API response body. Business-rule
// rejections and missing entities report "fail"; unexpected server-side
// failures report "failed:<reason>". Success responses embed "success".
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// FailedStatus renders the "failed:<reason>" status used for server-side
// failures, carrying the sanitized reason inline.
func FailedStatus(reason string) string {
	return "failed:" + reason
}

// StatusForCode derives the response status string from the HTTP status
// code: client errors are business rejections ("fail"), server errors carry
// the sanitized reason ("failed:<reason>").
func StatusForCode(code int, message string) string {
	if code >= http.StatusInternalServerError {
		return FailedStatus(message)
	}
	return StatusFail
}

// StatusResponse is the minimal response body: just the uniform status
// string. Operations with nothing else to report (cart add/remove, keyword
// recording, account closure) respond with it.
type StatusResponse struct {
	Status string `json:"status"`
}

// SuccessResponse builds a StatusResponse reporting success.
func SuccessResponse() StatusResponse {
	return StatusResponse{Status: StatusSuccess}
}

// ErrorResponse defines the standard error response structure. Status
// carries the uniform status string; Error carries the sanitized
// client-facing message.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Code    int    `json:"-"` // Not serialized to JSON, used for logging
	TraceID string `json:"trace_id,omitempty"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level. Use for important operational issues like
// repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code
// and message. The body carries the uniform status string and the trace ID
// from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	errorResponse := ErrorResponse{
		Status:  StatusForCode(status, message),
		Error:   message,
		Code:    status,
		TraceID: traceID,
	}

	// Log the error with trace ID for correlation
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, errorResponse)
}

// RespondWithErrorAndLog writes a JSON error response and also logs the detailed error.
// This is useful for handling errors where you want to log the full error but only
// expose a sanitized version to the client.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 4xx errors: By default logged at DEBUG level
// - 429 Too Many Requests: Logged at WARN level (operational concern)
//
// For 4xx errors that need higher visibility (e.g., repeated auth failures),
// use the WithElevatedLogLevel() option to elevate to WARN level.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	// Only the safe message is serialized; the raw error never reaches
	// the client.
	errorResponse := ErrorResponse{
		Status:  StatusForCode(status, userMessage),
		Error:   userMessage,
		Code:    status,
		TraceID: traceID,
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}

	// Full error details are redacted before they reach the logs.
	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", redact.Error(err)))
		logAttrs = append(logAttrs, slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, errorResponse)
}
