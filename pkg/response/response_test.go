package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/themirzaalibaig/server-ecommerce/pkg/response"
	"github.com/themirzaalibaig/server-ecommerce/pkg/validate"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, "ok", map[string]int{"n": 1})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != true {
		t.Error("expected success true")
	}
	if body["message"] != "ok" {
		t.Errorf("unexpected message %v", body["message"])
	}
	if _, ok := body["timestamp"]; !ok {
		t.Error("expected timestamp")
	}
	if _, ok := body["errors"]; ok {
		t.Error("success envelope must not carry errors")
	}
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Error(rec, http.StatusBadRequest, "nope")

	body := decode(t, rec)
	if body["success"] != false {
		t.Error("expected success false")
	}
	if body["data"] != nil {
		t.Error("error envelope must carry null data")
	}
	if errs, ok := body["errors"].([]interface{}); !ok || len(errs) != 0 {
		t.Errorf("expected empty errors list, got %v", body["errors"])
	}
}

func TestValidationErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, validate.Failed("email", "email", "The email must be a valid email address.", "x"))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	body := decode(t, rec)
	errs := body["errors"].([]interface{})
	first := errs[0].(map[string]interface{})
	if first["field"] != "email" || first["code"] != "email" {
		t.Errorf("unexpected error entry: %v", first)
	}
}

func TestNewMeta(t *testing.T) {
	cases := []struct {
		total        int64
		page, limit  int
		totalPages   int
		hasNext      bool
		hasPrev      bool
		next, prev   int // 0 = nil expected
	}{
		{95, 1, 10, 10, true, false, 2, 0},
		{95, 10, 10, 10, false, true, 0, 9},
		{95, 5, 10, 10, true, true, 6, 4},
		{0, 1, 10, 0, false, false, 0, 0},
		{10, 1, 10, 1, false, false, 0, 0},
		{11, 1, 10, 2, true, false, 2, 0},
	}

	for _, c := range cases {
		m := response.NewMeta(c.total, c.page, c.limit)
		if m.TotalPages != c.totalPages {
			t.Errorf("total=%d page=%d: totalPages=%d want %d", c.total, c.page, m.TotalPages, c.totalPages)
		}
		if m.HasNextPage != c.hasNext || m.HasPrevPage != c.hasPrev {
			t.Errorf("total=%d page=%d: hasNext=%v hasPrev=%v", c.total, c.page, m.HasNextPage, m.HasPrevPage)
		}
		if c.next == 0 && m.NextPage != nil {
			t.Errorf("total=%d page=%d: expected nil nextPage", c.total, c.page)
		}
		if c.next != 0 && (m.NextPage == nil || *m.NextPage != c.next) {
			t.Errorf("total=%d page=%d: wrong nextPage", c.total, c.page)
		}
		if c.prev == 0 && m.PrevPage != nil {
			t.Errorf("total=%d page=%d: expected nil prevPage", c.total, c.page)
		}
		if c.prev != 0 && (m.PrevPage == nil || *m.PrevPage != c.prev) {
			t.Errorf("total=%d page=%d: wrong prevPage", c.total, c.page)
		}
	}
}

func TestPrevPageNilExactlyWhenFirstPage(t *testing.T) {
	for page := 1; page <= 5; page++ {
		m := response.NewMeta(50, page, 10)
		if (m.PrevPage == nil) != (page == 1) {
			t.Errorf("page %d: prevPage nil-ness wrong", page)
		}
	}
}
