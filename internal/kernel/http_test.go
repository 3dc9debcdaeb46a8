package kernel

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/themirzaalibaig/server-ecommerce/pkg/ctx"
)

func TestHealthDatabaseDownReturns503(t *testing.T) {
	// No Mongo client is connected in tests, so the ping must fail.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	ctx.Wrap(health)(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Success {
		t.Error("success = true while database is down")
	}
	if body.Message == "" {
		t.Error("missing message in unhealthy response")
	}
}
