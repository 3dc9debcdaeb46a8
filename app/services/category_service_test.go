package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/app/repositories"
)

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	if args.Error(0) == nil && category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) All(ctx context.Context, page, limit int) ([]models.Category, int64, error) {
	args := m.Called(ctx, page, limit)
	var categories []models.Category
	if c := args.Get(0); c != nil {
		categories = c.([]models.Category)
	}
	return categories, args.Get(1).(int64), args.Error(2)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestCategoryCreateDerivesSlug(t *testing.T) {
	repo := new(mockCategoryRepo)
	repo.On("FindByName", mock.Anything, "Summer Dresses").
		Return(nil, repositories.ErrNoDocument)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)

	svc := NewCategoryService(repo)
	category, err := svc.Create(context.Background(), CategoryInput{Name: "Summer Dresses"})

	assert.NoError(t, err)
	assert.Equal(t, "summer-dresses", category.Slug)
	repo.AssertExpectations(t)
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	repo := new(mockCategoryRepo)
	repo.On("FindByName", mock.Anything, "Shoes").
		Return(&models.Category{Name: "Shoes"}, nil)

	svc := NewCategoryService(repo)
	_, err := svc.Create(context.Background(), CategoryInput{Name: "Shoes"})

	conflict, ok := AsConflict(err)
	assert.True(t, ok)
	assert.Equal(t, "name", conflict.Field)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryUpdateRenameRederivesSlug(t *testing.T) {
	existing := &models.Category{
		ID:   primitive.NewObjectID(),
		Name: "Shoes",
		Slug: "shoes",
	}
	repo := new(mockCategoryRepo)
	repo.On("FindByID", mock.Anything, existing.ID.Hex()).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)

	name := "Running Shoes"
	svc := NewCategoryService(repo)
	category, err := svc.Update(context.Background(), existing.ID.Hex(), CategoryUpdate{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "running-shoes", category.Slug)
}

func TestCategoryUpdatePartialKeepsUnsetFields(t *testing.T) {
	existing := &models.Category{
		ID:          primitive.NewObjectID(),
		Name:        "Shoes",
		Slug:        "shoes",
		Description: "old",
	}
	repo := new(mockCategoryRepo)
	repo.On("FindByID", mock.Anything, existing.ID.Hex()).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	desc := "new description"
	svc := NewCategoryService(repo)
	category, err := svc.Update(context.Background(), existing.ID.Hex(), CategoryUpdate{Description: &desc})

	assert.NoError(t, err)
	assert.Equal(t, "Shoes", category.Name)
	assert.Equal(t, "shoes", category.Slug)
	assert.Equal(t, "new description", category.Description)
}

func TestCategoryGetNotFound(t *testing.T) {
	repo := new(mockCategoryRepo)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, repositories.ErrNoDocument)

	svc := NewCategoryService(repo)
	_, err := svc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryDeleteNotFound(t *testing.T) {
	repo := new(mockCategoryRepo)
	repo.On("Delete", mock.Anything, "missing").Return(repositories.ErrNoDocument)

	svc := NewCategoryService(repo)
	err := svc.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryCreateKeepsClientSlug(t *testing.T) {
	repo := new(mockCategoryRepo)
	repo.On("FindByName", mock.Anything, "Shoes & Boots").
		Return(nil, repositories.ErrNoDocument)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)

	svc := NewCategoryService(repo)
	category, err := svc.Create(context.Background(), CategoryInput{Name: "Shoes & Boots", Slug: "footwear"})

	assert.NoError(t, err)
	assert.Equal(t, "footwear", category.Slug)
	repo.AssertExpectations(t)
}
