// Package ctx provides a compact request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helpers for binding, URL parameters,
// and envelope responses:
//
//	func GetProduct(c *ctx.Context) {
//	    id := c.Param("id")
//	    c.Success("Product fetched", product)
//	}
//
//	// Register with ctx.Wrap:
//	router.Get("/products/{id}", "products.show", ctx.Wrap(GetProduct))
package ctx

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/themirzaalibaig/server-ecommerce/pkg/bind"
	"github.com/themirzaalibaig/server-ecommerce/pkg/logger"
	"github.com/themirzaalibaig/server-ecommerce/pkg/middleware"
	"github.com/themirzaalibaig/server-ecommerce/pkg/response"
	"github.com/themirzaalibaig/server-ecommerce/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair for the duration of one request.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/products/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// DefaultQuery returns a query-string value, or def if it is empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

// QueryInt parses an integer query parameter, falling back to def on
// absence or garbage.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

// Pagination reads page/limit query parameters with sane bounds.
func (c *Context) Pagination() (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// FormFile returns the uploaded file for the given multipart field.
func (c *Context) FormFile(field string, maxBytes int64) (multipart.File, *multipart.FileHeader, error) {
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxBytes)
	if err := c.R.ParseMultipartForm(maxBytes); err != nil {
		return nil, nil, err
	}
	return c.R.FormFile(field)
}

// ClientIP returns the real client IP, respecting proxy headers.
func (c *Context) ClientIP() string {
	return middleware.ClientIP(c.R)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Principal returns the authenticated principal, if any.
func (c *Context) Principal() (*middleware.Principal, bool) {
	return middleware.PrincipalFromCtx(c.R.Context())
}

// ─── Binding ──────────────────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation.
// On validation failure it sends the aggregated 422 envelope and returns
// false. On a malformed body it sends a 400 and returns false.
// Returns true only when dest is valid and ready to use.
//
//	var input SignupInput
//	if !c.BindJSON(&input) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.BadRequest(err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers (uniform envelope) ──────────────────────────────────────

// Success sends a 200 envelope.
func (c *Context) Success(message string, data any) {
	response.Success(c.W, message, data)
}

// Created sends a 201 envelope.
func (c *Context) Created(message string, data any) {
	response.Created(c.W, message, data)
}

// Paginated sends a 200 envelope with pagination metadata.
func (c *Context) Paginated(message string, data any, meta response.Meta) {
	response.Paginated(c.W, message, data, meta)
}

// Error sends an error envelope with the given status and message.
func (c *Context) Error(status int, message string) {
	response.Error(c.W, status, message)
}

// ValidationError sends a 422 with the field-level error list.
func (c *Context) ValidationError(errs []validate.FieldError) {
	response.ValidationError(c.W, errs)
}

// FieldError sends a field-scoped error with an arbitrary status.
func (c *Context) FieldError(status int, errs []validate.FieldError) {
	response.FieldError(c.W, status, errs)
}

// BadRequest sends a 400.
func (c *Context) BadRequest(message string) { response.BadRequest(c.W, message) }

// Unauthorized sends a 401.
func (c *Context) Unauthorized(message string) { response.Unauthorized(c.W, message) }

// Forbidden sends a 403.
func (c *Context) Forbidden(message string) { response.Forbidden(c.W, message) }

// Internal logs err against the request and sends a generic 500.
func (c *Context) Internal(err error) {
	if err != nil {
		logError(c.R, err)
	}
	response.Internal(c.W)
}

func logError(r *http.Request, err error) {
	logger.WithCtx(r.Context()).Error("handler error", "error", err, "path", r.URL.Path)
}

// Bearer returns the raw bearer token from the Authorization header.
func (c *Context) Bearer() string {
	h := c.R.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
