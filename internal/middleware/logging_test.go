package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestLogging_TokenRedaction ensures session tokens are never logged.
func TestLogging_TokenRedaction(t *testing.T) {
	t.Parallel()

	token := "2f8d2e1b-9c7a-5f3d-2e1b-9c7a5f3d2e1b0123456789abcdef01234567"

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := Logger(logger)(handler)

	req := httptest.NewRequest("GET", "/api/v1/vault/timeline", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "TestAgent/1.0")

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if strings.Contains(buf.String(), token) {
		t.Error("log output contains the bearer token - credentials must never be logged")
	}
}

func TestLogging_StatusAndPath(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	wrapped := Logger(logger)(handler)

	req := httptest.NewRequest("GET", "/api/v1/vault/history", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	out := buf.String()
	if !strings.Contains(out, `"status_code":404`) {
		t.Errorf("log output missing status code: %s", out)
	}
	if !strings.Contains(out, "/api/v1/vault/history") {
		t.Errorf("log output missing path: %s", out)
	}
	if !strings.Contains(out, `"level":"WARN"`) {
		t.Errorf("4xx responses should log at warn level: %s", out)
	}
}

func TestRequestID_Generated(t *testing.T) {
	t.Parallel()

	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	rec := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatal("expected a generated request id in context")
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("response header %q != context id %q", got, seen)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	t.Parallel()

	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "caller-supplied-id")

	RequestID(handler).ServeHTTP(httptest.NewRecorder(), req)

	if seen != "caller-supplied-id" {
		t.Errorf("request id = %q, want the caller-supplied value", seen)
	}
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recoverer(logger)(handler).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Error("panic was not logged")
	}
}
