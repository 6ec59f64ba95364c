package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestRateLimiter_AllowsWithinLimit tests that requests under the limit pass.
func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

// TestRateLimiter_BlocksOverLimit tests that the bucket empties.
func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.1")
	if rl.Allow("10.0.0.1") {
		t.Error("third request should be blocked")
	}
}

// TestRateLimiter_PerIP tests that limits are tracked per client.
func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Allow("10.0.0.1")
	if !rl.Allow("10.0.0.2") {
		t.Error("second IP should have its own bucket")
	}
}

// TestRateLimit_Middleware tests the 429 response.
func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
}

// TestSecurityHeaders tests the OWASP header set.
func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	for header, want := range map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("expected a Content-Security-Policy header")
	}
}

// recordingRecorder captures the metrics middleware callback.
type recordingRecorder struct {
	method string
	status int
	calls  int
}

func (r *recordingRecorder) RecordHTTPRequest(method string, status int, _ time.Duration) {
	r.method = method
	r.status = status
	r.calls++
}

// TestMetrics_RecordsStatus tests method/status capture.
func TestMetrics_RecordsStatus(t *testing.T) {
	rec := &recordingRecorder{}
	handler := Metrics(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/players", nil))

	if rec.calls != 1 {
		t.Fatalf("expected 1 recording, got %d", rec.calls)
	}
	if rec.method != "POST" || rec.status != http.StatusCreated {
		t.Errorf("recorded %s %d, want POST 201", rec.method, rec.status)
	}
}

// TestMetrics_DefaultsTo200 tests implicit status capture.
func TestMetrics_DefaultsTo200(t *testing.T) {
	rec := &recordingRecorder{}
	handler := Metrics(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if rec.status != http.StatusOK {
		t.Errorf("recorded status %d, want 200", rec.status)
	}
}
