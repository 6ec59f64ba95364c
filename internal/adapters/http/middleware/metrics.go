package middleware

import (
	"net/http"
	"time"
)

// RequestRecorder receives per-request method/status/duration.
// Satisfied by *metrics.Collector.
type RequestRecorder interface {
	RecordHTTPRequest(method string, status int, duration time.Duration)
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Metrics returns middleware that records request counts and latency.
func Metrics(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if recorder == nil {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			recorder.RecordHTTPRequest(r.Method, sw.status, time.Since(start))
		})
	}
}
