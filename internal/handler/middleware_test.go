package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// --- SecurityHeaders middleware tests ---

func TestSecurityHeaders_SetsAllHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	SecurityHeaders(inner).ServeHTTP(rec, req)

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"X-XSS-Protection":       "0",
		"Permissions-Policy":     "camera=(), microphone=(), geolocation=()",
	}
	for name, want := range headers {
		got := rec.Header().Get(name)
		if got != want {
			t.Errorf("%s: want %q, got %q", name, want, got)
		}
	}
}

func TestSecurityHeaders_CSP(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	SecurityHeaders(inner).ServeHTTP(rec, req)

	csp := rec.Header().Get("Content-Security-Policy")
	if csp == "" {
		t.Fatal("Content-Security-Policy header not set")
	}
	for _, d := range []string{"default-src", "script-src", "frame-ancestors 'none'"} {
		if !strings.Contains(csp, d) {
			t.Errorf("CSP missing directive %q: %s", d, csp)
		}
	}
}

func TestSecurityHeaders_PassesThrough(t *testing.T) {
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	SecurityHeaders(inner).ServeHTTP(rec, req)

	if !called {
		t.Error("inner handler was not called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", rec.Code)
	}
}

// --- Recover middleware tests ---

func TestRecover_ConvertsPanicToGeneric500(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom in handler")
	})

	req := httptest.NewRequest("GET", "/send-email", nil)
	rec := httptest.NewRecorder()
	h.Recover(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp errResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Message != "Internal server error" {
		t.Errorf("expected generic message, got %q", resp.Message)
	}
}

func TestRecover_HidesDetailInProduction(t *testing.T) {
	cfg := testConfig() // production
	h := newTestHandler(cfg, nil, nil)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("secret internals")
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	h.Recover(inner).ServeHTTP(rec, req)

	if strings.Contains(rec.Body.String(), "secret internals") {
		t.Error("panic detail must not leak in production")
	}
	var resp errResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Error != "" || resp.Stack != "" {
		t.Error("expected no error/stack fields in production")
	}
}

func TestRecover_IncludesDetailInDevelopment(t *testing.T) {
	cfg := testConfig()
	cfg.Environment = "development"
	h := newTestHandler(cfg, nil, nil)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("dev detail")
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	h.Recover(inner).ServeHTTP(rec, req)

	var resp errResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "dev detail" {
		t.Errorf("expected panic value in error field, got %q", resp.Error)
	}
	if resp.Stack == "" {
		t.Error("expected a stack trace outside production")
	}
}

func TestRecover_NoPanicPassesThrough(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	h.Recover(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}
