package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/app/repositories"
	"github.com/themirzaalibaig/server-ecommerce/pkg/cache"
	"github.com/themirzaalibaig/server-ecommerce/pkg/slug"
)

// CacheNSProducts versions the product list cache.
const CacheNSProducts = "products"

// ProductInput carries the create payload.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Tags        []string
	Color       string
	Thumbnail   string
	Images      []string
	Stock       int
	CategoryID  string
	Size        []string
	TotalStock  int
	UserID      string
}

// ProductUpdate carries the partial-update payload. Nil pointers mean
// "leave unchanged".
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Tags        *[]string
	Color       *string
	Thumbnail   *string
	Images      *[]string
	Stock       *int
	CategoryID  *string
	Size        *[]string
	TotalStock  *int
	TotalSold   *int
}

type ProductService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
}

func NewProductService(products repositories.ProductRepository, categories repositories.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

// Create checks the referenced category exists, derives the slug from the
// name and persists the product. Slug uniqueness rides on the unique index.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	ok, err := s.categories.Exists(ctx, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("services: category check: %w", err)
	}
	if !ok {
		return nil, ErrCategoryMissing
	}

	catID, err := primitive.ObjectIDFromHex(in.CategoryID)
	if err != nil {
		return nil, ErrCategoryMissing
	}

	product := &models.Product{
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Tags:        in.Tags,
		Color:       in.Color,
		Thumbnail:   in.Thumbnail,
		Images:      in.Images,
		Stock:       in.Stock,
		CategoryID:  catID,
		Size:        in.Size,
		TotalStock:  in.TotalStock,
	}
	if oid, err := primitive.ObjectIDFromHex(in.UserID); err == nil {
		product.UserID = oid
	}
	product.Recompute()

	if err := s.products.Create(ctx, product); err != nil {
		if field, ok := repositories.IsDuplicate(err); ok {
			// The slug is derived from the name, so a slug collision is
			// really a name collision from the caller's point of view.
			if field == "slug" {
				field = "name"
			}
			return nil, conflictFor(field)
		}
		return nil, fmt.Errorf("services: create product: %w", err)
	}

	cache.Invalidate(CacheNSProducts)
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNoDocument {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("services: get product: %w", err)
	}
	return product, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, sl string) (*models.Product, error) {
	product, err := s.products.FindBySlug(ctx, sl)
	if err != nil {
		if err == repositories.ErrNoDocument {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("services: get product by slug: %w", err)
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, filter repositories.ProductFilter, page, limit int) ([]models.Product, int64, error) {
	products, total, err := s.products.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("services: list products: %w", err)
	}
	return products, total, nil
}

// Update applies the set fields, re-checks a changed category reference
// and refreshes derived fields before saving. The slug never changes
// after creation.
func (s *ProductService) Update(ctx context.Context, id string, in ProductUpdate) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNoDocument {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("services: update product lookup: %w", err)
	}

	if in.CategoryID != nil {
		ok, err := s.categories.Exists(ctx, *in.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("services: category check: %w", err)
		}
		if !ok {
			return nil, ErrCategoryMissing
		}
		if oid, err := primitive.ObjectIDFromHex(*in.CategoryID); err == nil {
			product.CategoryID = oid
		}
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Tags != nil {
		product.Tags = *in.Tags
	}
	if in.Color != nil {
		product.Color = *in.Color
	}
	if in.Thumbnail != nil {
		product.Thumbnail = *in.Thumbnail
	}
	if in.Images != nil {
		product.Images = *in.Images
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Size != nil {
		product.Size = *in.Size
	}
	if in.TotalStock != nil {
		product.TotalStock = *in.TotalStock
	}
	if in.TotalSold != nil {
		product.TotalSold = *in.TotalSold
	}
	product.Recompute()

	if err := s.products.Update(ctx, product); err != nil {
		if field, ok := repositories.IsDuplicate(err); ok {
			// The slug is derived from the name, so a slug collision is
			// really a name collision from the caller's point of view.
			if field == "slug" {
				field = "name"
			}
			return nil, conflictFor(field)
		}
		if err == repositories.ErrNoDocument {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("services: update product: %w", err)
	}

	cache.Invalidate(CacheNSProducts)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if err == repositories.ErrNoDocument {
			return ErrNotFound
		}
		return fmt.Errorf("services: delete product: %w", err)
	}

	cache.Invalidate(CacheNSProducts)
	return nil
}
