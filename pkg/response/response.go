// Package response writes the uniform JSON envelope used by every endpoint.
//
// Success:  {"success":true,"message":...,"data":...,"meta":...,"timestamp":...}
// Error:    {"success":false,"message":...,"data":null,"errors":[...],"timestamp":...}
package response

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/themirzaalibaig/server-ecommerce/pkg/validate"
)

// Envelope is the wire shape of every response. Errors is typed loosely so
// a nil value disappears on success while an empty list still serialises as
// [] on error responses.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Errors    interface{} `json:"errors,omitempty"`
	Meta      *Meta       `json:"meta,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Meta carries pagination metadata for list endpoints.
type Meta struct {
	TotalItems   int64 `json:"totalItems"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalPages   int   `json:"totalPages"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
	NextPage     *int  `json:"nextPage"`
	PrevPage     *int  `json:"prevPage"`
}

// NewMeta computes pagination metadata from the total item count, the
// current 1-based page, and the page size.
func NewMeta(totalItems int64, currentPage, itemsPerPage int) Meta {
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(itemsPerPage)))

	m := Meta{
		TotalItems:   totalItems,
		CurrentPage:  currentPage,
		ItemsPerPage: itemsPerPage,
		TotalPages:   totalPages,
		HasNextPage:  currentPage < totalPages,
		HasPrevPage:  currentPage > 1,
	}
	if m.HasNextPage {
		next := currentPage + 1
		m.NextPage = &next
	}
	if m.HasPrevPage {
		prev := currentPage - 1
		m.PrevPage = &prev
	}
	return m
}

func write(w http.ResponseWriter, status int, body Envelope) {
	body.Timestamp = time.Now().UTC()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 envelope with data.
func Success(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 envelope with data.
func Created(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Paginated sends a 200 envelope with data and pagination metadata.
func Paginated(w http.ResponseWriter, message string, data interface{}, meta Meta) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Meta: &meta})
}

// Error sends an error envelope with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Message: message, Errors: []validate.FieldError{}})
}

// ValidationError sends a 422 with the aggregated field-level error list.
func ValidationError(w http.ResponseWriter, errs []validate.FieldError) {
	write(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// FieldError sends a field-scoped error with an arbitrary status. Duplicate
// checks use this with 400 so conflicts share the validation payload shape.
func FieldError(w http.ResponseWriter, status int, errs []validate.FieldError) {
	msg := "Validation failed"
	if len(errs) > 0 {
		msg = errs[0].Message
	}
	write(w, status, Envelope{Success: false, Message: msg, Errors: errs})
}

// BadRequest sends a 400.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message)
}

// TooManyRequests sends a 429.
func TooManyRequests(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Too many requests, please try again later"
	}
	Error(w, http.StatusTooManyRequests, message)
}

// Internal sends a 500 with a generic message; details stay server-side.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error")
}
