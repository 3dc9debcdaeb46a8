package services

import (
	"context"
	"fmt"

	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/app/repositories"
	"github.com/themirzaalibaig/server-ecommerce/pkg/cache"
	"github.com/themirzaalibaig/server-ecommerce/pkg/slug"
)

// CacheNSCategories versions the category list cache.
const CacheNSCategories = "categories"

// CategoryInput carries the create payload. Slug is optional; when empty
// it is derived from Name.
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	Image       string
}

// CategoryUpdate carries the partial-update payload. Nil pointers mean
// "leave unchanged".
type CategoryUpdate struct {
	Name        *string
	Description *string
	Image       *string
}

type CategoryService struct {
	categories repositories.CategoryRepository
}

func NewCategoryService(categories repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create persists the category, deriving the slug from the name when the
// payload does not carry one. Name/slug uniqueness rides on the unique
// indexes; the duplicate-key error is translated into a field-scoped
// conflict.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if _, err := s.categories.FindByName(ctx, in.Name); err == nil {
		return nil, conflictFor("name")
	} else if err != repositories.ErrNoDocument {
		return nil, fmt.Errorf("services: category pre-check: %w", err)
	}

	sl := in.Slug
	if sl == "" {
		sl = slug.Make(in.Name)
	}

	category := &models.Category{
		Name:        in.Name,
		Slug:        sl,
		Description: in.Description,
		Image:       in.Image,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if field, ok := repositories.IsDuplicate(err); ok {
			return nil, conflictFor(field)
		}
		return nil, fmt.Errorf("services: create category: %w", err)
	}

	cache.Invalidate(CacheNSCategories)
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNoDocument {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("services: get category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, page, limit int) ([]models.Category, int64, error) {
	categories, total, err := s.categories.All(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("services: list categories: %w", err)
	}
	return categories, total, nil
}

// Update applies the set fields. Renaming re-derives the slug.
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryUpdate) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNoDocument {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("services: update category lookup: %w", err)
	}

	if in.Name != nil && *in.Name != category.Name {
		category.Name = *in.Name
		category.Slug = slug.Make(*in.Name)
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Image != nil {
		category.Image = *in.Image
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if field, ok := repositories.IsDuplicate(err); ok {
			return nil, conflictFor(field)
		}
		if err == repositories.ErrNoDocument {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("services: update category: %w", err)
	}

	cache.Invalidate(CacheNSCategories)
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if err == repositories.ErrNoDocument {
			return ErrNotFound
		}
		return fmt.Errorf("services: delete category: %w", err)
	}

	cache.Invalidate(CacheNSCategories)
	return nil
}
