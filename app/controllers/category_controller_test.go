package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/app/repositories"
	"github.com/themirzaalibaig/server-ecommerce/app/services"
	"github.com/themirzaalibaig/server-ecommerce/pkg/ctx"
)

// stubCategoryRepo is an in-memory CategoryRepository that accepts every
// write. Lookups behave as if the store were empty.
type stubCategoryRepo struct{}

func (stubCategoryRepo) Create(_ context.Context, category *models.Category) error {
	category.ID = primitive.NewObjectID()
	return nil
}

func (stubCategoryRepo) FindByID(context.Context, string) (*models.Category, error) {
	return nil, repositories.ErrNoDocument
}

func (stubCategoryRepo) FindByName(context.Context, string) (*models.Category, error) {
	return nil, repositories.ErrNoDocument
}

func (stubCategoryRepo) All(context.Context, int, int) ([]models.Category, int64, error) {
	return nil, 0, nil
}

func (stubCategoryRepo) Update(context.Context, *models.Category) error { return nil }
func (stubCategoryRepo) Delete(context.Context, string) error           { return nil }
func (stubCategoryRepo) Exists(context.Context, string) (bool, error)   { return false, nil }

func postCategory(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	cc := NewCategoryController(services.NewCategoryService(stubCategoryRepo{}))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx.Wrap(cc.Store)(rec, req)
	return rec
}

func decodeCategory(t *testing.T, rec *httptest.ResponseRecorder) *models.Category {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Category *models.Category `json:"category"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.Success {
		t.Fatalf("success = false, body = %s", rec.Body.String())
	}
	if body.Data.Category == nil {
		t.Fatalf("data.category missing, body = %s", rec.Body.String())
	}
	return body.Data.Category
}

func TestCategoryStoreKeepsClientSlug(t *testing.T) {
	rec := postCategory(t, `{"name":"Shoes","slug":"shoes"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	category := decodeCategory(t, rec)
	if category.Slug != "shoes" {
		t.Errorf("slug = %q, want %q", category.Slug, "shoes")
	}
	if category.Name != "Shoes" {
		t.Errorf("name = %q, want %q", category.Name, "Shoes")
	}
}

func TestCategoryStoreDerivesSlugWhenAbsent(t *testing.T) {
	rec := postCategory(t, `{"name":"Summer Dresses"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	category := decodeCategory(t, rec)
	if category.Slug != "summer-dresses" {
		t.Errorf("slug = %q, want %q", category.Slug, "summer-dresses")
	}
}

func TestCategoryStoreRejectsMalformedSlug(t *testing.T) {
	rec := postCategory(t, `{"name":"Shoes","slug":"Not A Slug!"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var body struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0].Field != "slug" {
		t.Errorf("errors = %+v, want a single error on field slug", body.Errors)
	}
}
