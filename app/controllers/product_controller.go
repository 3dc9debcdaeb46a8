package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/app/repositories"
	"github.com/themirzaalibaig/server-ecommerce/app/services"
	"github.com/themirzaalibaig/server-ecommerce/pkg/cache"
	"github.com/themirzaalibaig/server-ecommerce/pkg/ctx"
	"github.com/themirzaalibaig/server-ecommerce/pkg/response"
	"github.com/themirzaalibaig/server-ecommerce/pkg/validate"
)

type createProductRequest struct {
	Name        string   `json:"name"        validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"nullable,max=2000"`
	Price       float64  `json:"price"       validate:"numeric,gte=0"`
	Tags        []string `json:"tags"        validate:"nullable,len_max=20"`
	Color       string   `json:"color"       validate:"nullable,max=50"`
	Thumbnail   string   `json:"thumbnail"   validate:"nullable,url"`
	Images      []string `json:"images"      validate:"required,len_min=1,len_max=10"`
	Stock       int      `json:"stock"       validate:"gte=0"`
	Category    string   `json:"category"    validate:"required"`
	Size        []string `json:"size"        validate:"nullable,len_max=10"`
	TotalStock  int      `json:"totalStock"  validate:"gte=0"`
	UserID      string   `json:"userId"      validate:"nullable"`
}

type updateProductRequest struct {
	Name        *string   `json:"name"        validate:"min=2,max=200"`
	Description *string   `json:"description" validate:"max=2000"`
	Price       *float64  `json:"price"       validate:"gte=0"`
	Tags        *[]string `json:"tags"`
	Color       *string   `json:"color"       validate:"max=50"`
	Thumbnail   *string   `json:"thumbnail"   validate:"nullable,url"`
	Images      *[]string `json:"images"      validate:"len_min=1,len_max=10"`
	Stock       *int      `json:"stock"       validate:"gte=0"`
	Category    *string   `json:"category"    validate:"min=1"`
	Size        *[]string `json:"size"        validate:"len_max=10"`
	TotalStock  *int      `json:"totalStock"  validate:"gte=0"`
	TotalSold   *int      `json:"totalSold"   validate:"gte=0"`
	UserID      *string   `json:"userId"`
}

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// productPayload wraps a single product under a "product" key.
type productPayload struct {
	Product *models.Product `json:"product"`
}

type productListPayload struct {
	Products []models.Product `json:"products"`
	Meta     response.Meta    `json:"meta"`
}

// listFilter reads the optional query filters. Every provided clause is
// ANDed; absent parameters contribute nothing. Malformed values are
// reported as field errors rather than ignored.
func listFilter(c *ctx.Context) (repositories.ProductFilter, []validate.FieldError) {
	f := repositories.ProductFilter{Category: c.Query("category")}
	var errs []validate.FieldError

	if raw := c.Query("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinPrice = &v
		} else {
			errs = append(errs, validate.FieldError{Field: "minPrice", Code: "numeric", Message: "minPrice must be a number", Value: raw})
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MaxPrice = &v
		} else {
			errs = append(errs, validate.FieldError{Field: "maxPrice", Code: "numeric", Message: "maxPrice must be a number", Value: raw})
		}
	}
	if raw := c.Query("size"); raw != "" {
		f.Sizes = strings.Split(raw, ",")
	}
	if raw := c.Query("inStock"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.InStock = &v
		} else {
			errs = append(errs, validate.FieldError{Field: "inStock", Code: "boolean", Message: "inStock must be true or false", Value: raw})
		}
	}
	return f, errs
}

// filterSignature keys the list cache by the full query shape.
func filterSignature(f repositories.ProductFilter, page, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "p%d:l%d:c%s", page, limit, f.Category)
	if f.MinPrice != nil {
		fmt.Fprintf(&b, ":min%g", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		fmt.Fprintf(&b, ":max%g", *f.MaxPrice)
	}
	if len(f.Sizes) > 0 {
		fmt.Fprintf(&b, ":s%s", strings.Join(f.Sizes, ","))
	}
	if f.InStock != nil {
		fmt.Fprintf(&b, ":in%t", *f.InStock)
	}
	return b.String()
}

func (pc *ProductController) Index(c *ctx.Context) {
	page, limit := c.Pagination()
	filter, ferrs := listFilter(c)
	if len(ferrs) > 0 {
		c.ValidationError(ferrs)
		return
	}

	key := cache.Key(services.CacheNSProducts, filterSignature(filter, page, limit))
	var cached productListPayload
	if cache.Get(key, &cached) {
		c.Paginated("Products fetched successfully", cached.Products, cached.Meta)
		return
	}

	products, total, err := pc.service.List(c.Context(), filter, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := response.NewMeta(total, page, limit)
	cache.Set(key, productListPayload{Products: products, Meta: meta}, 2*time.Minute)
	c.Paginated("Products fetched successfully", products, meta)
}

func (pc *ProductController) Show(c *ctx.Context) {
	product, err := pc.service.Get(c.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success("Product fetched successfully", productPayload{Product: product})
}

func (pc *ProductController) ShowBySlug(c *ctx.Context) {
	product, err := pc.service.GetBySlug(c.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success("Product fetched successfully", productPayload{Product: product})
}

func (pc *ProductController) Store(c *ctx.Context) {
	var req createProductRequest
	if !c.BindJSON(&req) {
		return
	}

	in := services.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tags:        req.Tags,
		Color:       req.Color,
		Thumbnail:   req.Thumbnail,
		Images:      req.Images,
		Stock:       req.Stock,
		CategoryID:  req.Category,
		Size:        req.Size,
		TotalStock:  req.TotalStock,
	}
	// The creator owns the product regardless of what the payload claims.
	if principal, ok := c.Principal(); ok {
		in.UserID = principal.ID
	}

	product, err := pc.service.Create(c.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Created("Product created successfully", productPayload{Product: product})
}

func (pc *ProductController) Update(c *ctx.Context) {
	var req updateProductRequest
	if !c.BindJSON(&req) {
		return
	}

	product, err := pc.service.Update(c.Context(), c.Param("id"), services.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tags:        req.Tags,
		Color:       req.Color,
		Thumbnail:   req.Thumbnail,
		Images:      req.Images,
		Stock:       req.Stock,
		CategoryID:  req.Category,
		Size:        req.Size,
		TotalStock:  req.TotalStock,
		TotalSold:   req.TotalSold,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Success("Product updated successfully", productPayload{Product: product})
}

func (pc *ProductController) Destroy(c *ctx.Context) {
	if err := pc.service.Delete(c.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success("Product deleted successfully", nil)
}
