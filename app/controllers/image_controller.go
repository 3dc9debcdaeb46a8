package controllers

import (
	"errors"
	"net/http"

	"github.com/themirzaalibaig/server-ecommerce/app/services"
	"github.com/themirzaalibaig/server-ecommerce/pkg/ctx"
	"github.com/themirzaalibaig/server-ecommerce/pkg/validate"
)

type deleteImageRequest struct {
	Key string `json:"key" validate:"required"`
}

type ImageController struct {
	service *services.ImageService
}

func NewImageController(service *services.ImageService) *ImageController {
	return &ImageController{service: service}
}

// Upload accepts a single multipart file under the "image" field.
func (ic *ImageController) Upload(c *ctx.Context) {
	file, header, err := c.FormFile("image", services.MaxImageBytes+1024)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			ic.respondImageError(c, services.ErrImageTooLarge)
			return
		}
		c.FieldError(http.StatusUnprocessableEntity,
			validate.Failed("image", "required", "The image field is required.", nil))
		return
	}
	defer file.Close()

	uploaded, err := ic.service.Upload(c.Context(), file, header)
	if err != nil {
		ic.respondImageError(c, err)
		return
	}

	c.Created("Image uploaded successfully", uploaded)
}

func (ic *ImageController) Delete(c *ctx.Context) {
	var req deleteImageRequest
	if !c.BindJSON(&req) {
		return
	}

	if err := ic.service.Delete(c.Context(), req.Key); err != nil {
		ic.respondImageError(c, err)
		return
	}

	c.Success("Image deleted successfully", nil)
}

func (ic *ImageController) respondImageError(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrImageTooLarge):
		c.FieldError(http.StatusUnprocessableEntity,
			validate.Failed("image", "max", err.Error(), nil))
	case errors.Is(err, services.ErrImageBadType):
		c.FieldError(http.StatusUnprocessableEntity,
			validate.Failed("image", "mimetype", err.Error(), nil))
	case errors.Is(err, services.ErrImageMissingKey):
		c.FieldError(http.StatusUnprocessableEntity,
			validate.Failed("key", "required", err.Error(), nil))
	default:
		c.Internal(err)
	}
}
