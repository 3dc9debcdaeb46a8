package ctx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestParamAndQuery(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/items/{id}", Wrap(func(c *Context) {
		if got := c.Param("id"); got != "42" {
			t.Errorf("Param(id) = %q, want 42", got)
		}
		if got := c.DefaultQuery("sort", "name"); got != "name" {
			t.Errorf("DefaultQuery fallback = %q, want name", got)
		}
		if got := c.QueryInt("limit", 10); got != 25 {
			t.Errorf("QueryInt(limit) = %d, want 25", got)
		}
		c.Success("ok", nil)
	}))

	req := httptest.NewRequest(http.MethodGet, "/items/42?limit=25", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestPaginationBounds(t *testing.T) {
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 10},
		{"?page=3&limit=20", 3, 20},
		{"?page=-1&limit=0", 1, 10},
		{"?page=2&limit=500", 2, 100},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
		c := acquire(httptest.NewRecorder(), req)
		page, limit := c.Pagination()
		release(c)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Errorf("Pagination(%q) = (%d, %d), want (%d, %d)", tc.query, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestBindJSONValidationFailure(t *testing.T) {
	type input struct {
		Email string `json:"email" validate:"required,email"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	c := acquire(rec, req)
	var in input
	ok := c.BindJSON(&in)
	release(c)

	if ok {
		t.Fatal("BindJSON returned true for invalid input")
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Errors  []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Success {
		t.Error("success = true on validation failure")
	}
	if len(body.Errors) != 1 || body.Errors[0].Field != "email" {
		t.Errorf("errors = %+v, want one error for email", body.Errors)
	}
}

func TestBindJSONMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	c := acquire(rec, req)
	var dest map[string]any
	ok := c.BindJSON(&dest)
	release(c)

	if ok {
		t.Fatal("BindJSON returned true for malformed body")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	c := acquire(httptest.NewRecorder(), req)
	defer release(c)

	if got := c.Bearer(); got != "abc.def.ghi" {
		t.Errorf("Bearer() = %q", got)
	}

	c.R.Header.Set("Authorization", "Basic xyz")
	if got := c.Bearer(); got != "" {
		t.Errorf("Bearer() with Basic scheme = %q, want empty", got)
	}
}
