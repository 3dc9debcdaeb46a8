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

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	if args.Error(0) == nil && product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, filter repositories.ProductFilter, page, limit int) ([]models.Product, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	var products []models.Product
	if p := args.Get(0); p != nil {
		products = p.([]models.Product)
	}
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) Update(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func validProduct(categoryID string) ProductInput {
	return ProductInput{
		Name:       "Trail Runner 2",
		Price:      129.99,
		Images:     []string{"uploads/2026/09/a.jpg"},
		Stock:      5,
		CategoryID: categoryID,
		Size:       []string{"m", "l"},
		TotalStock: 5,
	}
}

func TestProductCreate(t *testing.T) {
	catID := primitive.NewObjectID()

	categories := new(mockCategoryRepo)
	categories.On("Exists", mock.Anything, catID.Hex()).Return(true, nil)

	products := new(mockProductRepo)
	products.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)

	svc := NewProductService(products, categories)
	product, err := svc.Create(context.Background(), validProduct(catID.Hex()))

	assert.NoError(t, err)
	assert.Equal(t, "trail-runner-2", product.Slug)
	assert.Equal(t, catID, product.CategoryID)
	assert.True(t, product.InStock)
	products.AssertExpectations(t)
}

func TestProductCreateMissingCategory(t *testing.T) {
	catID := primitive.NewObjectID()

	categories := new(mockCategoryRepo)
	categories.On("Exists", mock.Anything, catID.Hex()).Return(false, nil)

	products := new(mockProductRepo)

	svc := NewProductService(products, categories)
	_, err := svc.Create(context.Background(), validProduct(catID.Hex()))

	assert.ErrorIs(t, err, ErrCategoryMissing)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductCreateZeroStockNotInStock(t *testing.T) {
	catID := primitive.NewObjectID()

	categories := new(mockCategoryRepo)
	categories.On("Exists", mock.Anything, catID.Hex()).Return(true, nil)

	products := new(mockProductRepo)
	products.On("Create", mock.Anything, mock.Anything).Return(nil)

	in := validProduct(catID.Hex())
	in.Stock = 0

	svc := NewProductService(products, categories)
	product, err := svc.Create(context.Background(), in)

	assert.NoError(t, err)
	assert.False(t, product.InStock)
}

func TestProductUpdateRecomputesInStock(t *testing.T) {
	existing := &models.Product{
		ID:      primitive.NewObjectID(),
		Name:    "Trail Runner 2",
		Slug:    "trail-runner-2",
		Stock:   5,
		InStock: true,
	}

	products := new(mockProductRepo)
	products.On("FindByID", mock.Anything, existing.ID.Hex()).Return(existing, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewProductService(products, new(mockCategoryRepo))

	zero := 0
	product, err := svc.Update(context.Background(), existing.ID.Hex(), ProductUpdate{Stock: &zero})

	assert.NoError(t, err)
	assert.Equal(t, 0, product.Stock)
	assert.False(t, product.InStock, "inStock must be recomputed on save")
}

func TestProductUpdateKeepsSlugOnRename(t *testing.T) {
	existing := &models.Product{
		ID:   primitive.NewObjectID(),
		Name: "Trail Runner 2",
		Slug: "trail-runner-2",
	}

	products := new(mockProductRepo)
	products.On("FindByID", mock.Anything, existing.ID.Hex()).Return(existing, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewProductService(products, new(mockCategoryRepo))

	name := "Trail Runner 3"
	product, err := svc.Update(context.Background(), existing.ID.Hex(), ProductUpdate{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "Trail Runner 3", product.Name)
	assert.Equal(t, "trail-runner-2", product.Slug, "slug is fixed at creation")
}

func TestProductUpdateRejectsMissingCategory(t *testing.T) {
	existing := &models.Product{ID: primitive.NewObjectID()}

	products := new(mockProductRepo)
	products.On("FindByID", mock.Anything, existing.ID.Hex()).Return(existing, nil)

	categories := new(mockCategoryRepo)
	badCat := primitive.NewObjectID().Hex()
	categories.On("Exists", mock.Anything, badCat).Return(false, nil)

	svc := NewProductService(products, categories)
	_, err := svc.Update(context.Background(), existing.ID.Hex(), ProductUpdate{CategoryID: &badCat})

	assert.ErrorIs(t, err, ErrCategoryMissing)
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductGetBySlugNotFound(t *testing.T) {
	products := new(mockProductRepo)
	products.On("FindBySlug", mock.Anything, "ghost").Return(nil, repositories.ErrNoDocument)

	svc := NewProductService(products, new(mockCategoryRepo))
	_, err := svc.GetBySlug(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductCreateDuplicateNameReportsNameField(t *testing.T) {
	catID := primitive.NewObjectID()

	categories := new(mockCategoryRepo)
	categories.On("Exists", mock.Anything, catID.Hex()).Return(true, nil)

	products := new(mockProductRepo)
	products.On("Create", mock.Anything, mock.Anything).
		Return(&repositories.DuplicateKeyError{Field: "slug"})

	svc := NewProductService(products, categories)
	_, err := svc.Create(context.Background(), validProduct(catID.Hex()))

	conflict, ok := AsConflict(err)
	assert.True(t, ok)
	assert.Equal(t, "name", conflict.Field)
	assert.Equal(t, "name is already taken", conflict.Message)
}
