package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// normalizePath maps dynamic path segments to route patterns so metric label
// cardinality stays bounded regardless of how many requesters exist.
func normalizePath(path string) string {
	switch path {
	case "/", "/health", "/ready", "/metrics", "/debug/listings", "/debug/profiles":
		return path
	}

	// /recommendations/{studentID}
	if strings.HasPrefix(path, "/recommendations/") {
		parts := strings.Split(path, "/")
		if len(parts) == 3 && parts[2] != "" {
			return "/recommendations/{studentID}"
		}
	}

	// Unknown route; keep as-is so new endpoints still show up.
	return path
}

// metricsResponseWriter wraps http.ResponseWriter to capture status and size.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int64
	wroteHeader bool
}

func (mrw *metricsResponseWriter) WriteHeader(code int) {
	if mrw.wroteHeader {
		return
	}
	mrw.statusCode = code
	mrw.wroteHeader = true
	mrw.ResponseWriter.WriteHeader(code)
}

func (mrw *metricsResponseWriter) Write(b []byte) (int, error) {
	n, err := mrw.ResponseWriter.Write(b)
	mrw.size += int64(n)
	return n, err
}

// SetErrorCode forwards error codes to the wrapped logging writer.
func (mrw *metricsResponseWriter) SetErrorCode(code string) {
	SetResponseErrorCode(mrw.ResponseWriter, code)
}

// HTTPMetrics records request duration, count, and response size per
// normalized route. Health probes are excluded to avoid noise.
func HTTPMetrics(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || r.URL.Path == "/ready" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			mrw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(mrw, r)

			metrics.ObserveHTTPRequest(
				r.Method,
				normalizePath(r.URL.Path),
				strconv.Itoa(mrw.statusCode),
				time.Since(start).Seconds(),
				mrw.size,
			)
		})
	}
}
