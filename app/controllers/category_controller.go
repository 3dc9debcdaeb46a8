package controllers

import (
	"fmt"
	"time"

	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/app/services"
	"github.com/themirzaalibaig/server-ecommerce/pkg/cache"
	"github.com/themirzaalibaig/server-ecommerce/pkg/ctx"
	"github.com/themirzaalibaig/server-ecommerce/pkg/response"
)

type createCategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Slug        string `json:"slug"        validate:"nullable,slug"`
	Description string `json:"description" validate:"nullable,max=500"`
	Image       string `json:"image"       validate:"nullable,url"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"        validate:"min=2,max=100"`
	Description *string `json:"description" validate:"max=500"`
	Image       *string `json:"image"       validate:"nullable,url"`
}

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController(service *services.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

// categoryPayload wraps a single category under a "category" key.
type categoryPayload struct {
	Category *models.Category `json:"category"`
}

// categoryListPayload is the cached shape of the list response.
type categoryListPayload struct {
	Categories []models.Category `json:"categories"`
	Meta       response.Meta     `json:"meta"`
}

func (cc *CategoryController) Index(c *ctx.Context) {
	page, limit := c.Pagination()

	key := cache.Key(services.CacheNSCategories, fmt.Sprintf("p%d:l%d", page, limit))
	var cached categoryListPayload
	if cache.Get(key, &cached) {
		c.Paginated("Categories fetched successfully", cached.Categories, cached.Meta)
		return
	}

	categories, total, err := cc.service.List(c.Context(), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := response.NewMeta(total, page, limit)
	cache.Set(key, categoryListPayload{Categories: categories, Meta: meta}, 5*time.Minute)
	c.Paginated("Categories fetched successfully", categories, meta)
}

func (cc *CategoryController) Show(c *ctx.Context) {
	category, err := cc.service.Get(c.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success("Category fetched successfully", categoryPayload{Category: category})
}

func (cc *CategoryController) Store(c *ctx.Context) {
	var req createCategoryRequest
	if !c.BindJSON(&req) {
		return
	}

	category, err := cc.service.Create(c.Context(), services.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Created("Category created successfully", categoryPayload{Category: category})
}

func (cc *CategoryController) Update(c *ctx.Context) {
	var req updateCategoryRequest
	if !c.BindJSON(&req) {
		return
	}

	category, err := cc.service.Update(c.Context(), c.Param("id"), services.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Success("Category updated successfully", categoryPayload{Category: category})
}

func (cc *CategoryController) Destroy(c *ctx.Context) {
	if err := cc.service.Delete(c.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success("Category deleted successfully", nil)
}
