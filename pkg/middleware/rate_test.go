package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/themirzaalibaig/server-ecommerce/pkg/middleware"
)

func limited(p middleware.Policy) http.Handler {
	return middleware.RateLimit(p)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func hit(h http.Handler, ip string) int {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":54321"
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthPolicySixthAttemptRejected(t *testing.T) {
	middleware.ResetBuckets()
	h := limited(middleware.AuthPolicy)

	for i := 1; i <= 5; i++ {
		if code := hit(h, "10.0.0.1"); code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i, code)
		}
	}
	if code := hit(h, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("6th attempt: expected 429, got %d", code)
	}
}

func TestPoliciesAreIndependentPerAddress(t *testing.T) {
	middleware.ResetBuckets()
	h := limited(middleware.AuthPolicy)

	for i := 0; i < 5; i++ {
		hit(h, "10.0.0.1")
	}
	if code := hit(h, "10.0.0.2"); code != http.StatusOK {
		t.Errorf("other address should have its own window, got %d", code)
	}
}

func TestPoliciesAreIndependentPerClass(t *testing.T) {
	middleware.ResetBuckets()
	authH := limited(middleware.AuthPolicy)
	createH := limited(middleware.CreatePolicy)

	for i := 0; i < 5; i++ {
		hit(authH, "10.0.0.3")
	}
	if code := hit(authH, "10.0.0.3"); code != http.StatusTooManyRequests {
		t.Fatalf("auth window should be exhausted, got %d", code)
	}
	if code := hit(createH, "10.0.0.3"); code != http.StatusOK {
		t.Errorf("create window must be separate from auth, got %d", code)
	}
}

func TestForwardedForDeterminesAddress(t *testing.T) {
	middleware.ResetBuckets()
	h := limited(middleware.AuthPolicy)

	for i := 0; i < 6; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "127.0.0.1:1000"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		h.ServeHTTP(rec, req)
		if i < 5 && rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
		}
		if i == 5 && rec.Code != http.StatusTooManyRequests {
			t.Errorf("expected forwarded address to be limited, got %d", rec.Code)
		}
	}
}

func TestClientIPStripsPort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.9:4312"
	if ip := middleware.ClientIP(req); ip != "192.0.2.9" {
		t.Errorf("expected bare IP, got %q", ip)
	}
}
