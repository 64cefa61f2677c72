package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status code, response
// size, and an error code set by handlers for log enrichment.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int
	wroteHeader bool
	errorCode   string
}

// WriteHeader captures the status code before writing it. Only the first call
// takes effect, matching http.ResponseWriter behavior.
func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures the response size and writes the data.
func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// SetErrorCode records a machine-readable error code for the request log.
func (rw *responseWriter) SetErrorCode(code string) {
	rw.errorCode = code
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// SetResponseErrorCode attaches an error code to the response writer so the
// logging middleware can include it in the request log. No-op when the writer
// does not pass through the logging middleware.
func SetResponseErrorCode(w http.ResponseWriter, code string) {
	if s, ok := w.(interface{ SetErrorCode(string) }); ok {
		s.SetErrorCode(code)
	}
}

// NewLogger creates an slog.Logger based on the environment.
// Production gets a JSON handler at info level; everything else gets a text
// handler at debug level.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return slog.New(handler)
}

// Logging logs each request with structured fields: method, path, status,
// latency, response size, request ID, and error code for 4xx/5xx responses.
//
// If a handler panics the log entry is not written; place a recovery
// middleware outside of this one to log panics.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.statusCode),
				slog.Int64("latency_ms", time.Since(start).Milliseconds()),
				slog.Int("size", rw.size),
			}
			if id := GetRequestID(r.Context()); id != "" {
				attrs = append(attrs, slog.String("request_id", id))
			}
			if rw.statusCode >= 400 && rw.errorCode != "" {
				attrs = append(attrs, slog.String("error_code", rw.errorCode))
			}

			level := slog.LevelInfo
			switch {
			case rw.statusCode >= 500:
				level = slog.LevelError
			case rw.statusCode >= 400:
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "request completed", attrs...)
		})
	}
}
