// Package controllers wires HTTP requests to the service layer.
package controllers

import (
	"errors"
	"net/http"

	"github.com/themirzaalibaig/server-ecommerce/app/services"
	"github.com/themirzaalibaig/server-ecommerce/pkg/ctx"
	"github.com/themirzaalibaig/server-ecommerce/pkg/validate"
)

// respondServiceError maps service-layer errors onto the envelope.
// Duplicates become a 400 with a field-scoped validation payload;
// unexpected errors become a logged 500.
func respondServiceError(c *ctx.Context, err error) {
	if conflict, ok := services.AsConflict(err); ok {
		c.FieldError(http.StatusBadRequest,
			validate.Failed(conflict.Field, "duplicate", conflict.Message, nil))
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized(err.Error())
	case errors.Is(err, services.ErrAccountDisabled):
		c.Forbidden(err.Error())
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrCategoryMissing):
		c.BadRequest(err.Error())
	default:
		c.Internal(err)
	}
}
