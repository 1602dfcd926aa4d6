package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

var requestInfoContextKey = contextKey("request_info")

// requestInfo is filled in by inner middleware and read back when the request is logged.
type requestInfo struct {
	requestID string
	userID    string
}

func requestInfoFromContext(ctx context.Context) *requestInfo {
	info, _ := ctx.Value(requestInfoContextKey).(*requestInfo)
	return info
}

// RequestIDFromContext returns the request id assigned by the logging middleware, or "".
func RequestIDFromContext(ctx context.Context) string {
	if info := requestInfoFromContext(ctx); info != nil {
		return info.requestID
	}
	return ""
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader records the status code and delegates.
func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Write records 200 when WriteHeader was never called.
func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// NewLoggingMiddleware logs every request as structured JSON with method, path,
// status, duration_ms, request_id and, once authenticated, user_id.
// An incoming X-Request-ID that is a valid UUID is reused, otherwise a new one is generated.
func NewLoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(requestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			info := &requestInfo{requestID: requestID}
			ctx := context.WithValue(r.Context(), requestInfoContextKey, info)

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r.WithContext(ctx))

			durationMs := float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)

			args := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.statusCode),
				slog.Float64("duration_ms", durationMs),
				slog.String("request_id", requestID),
			}
			if info.userID != "" {
				args = append(args, slog.String("user_id", info.userID))
			}

			level := slog.LevelInfo
			if rec.statusCode >= 500 {
				level = slog.LevelError
			} else if rec.statusCode >= 400 {
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "http_request", args...)
		})
	}
}

// StatusRecorder receives the status code of every response.
type StatusRecorder interface {
	RecordHTTPStatus(statusCode int)
}

// NewMetricsMiddleware reports each response status to recorder.
func NewMetricsMiddleware(recorder StatusRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)
			recorder.RecordHTTPStatus(rec.statusCode)
		})
	}
}
