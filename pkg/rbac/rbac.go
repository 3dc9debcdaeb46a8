// Package rbac provides role-based and ownership-based access control
// middleware layered on top of the authenticated principal.
package rbac

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/themirzaalibaig/server-ecommerce/pkg/middleware"
	"github.com/themirzaalibaig/server-ecommerce/pkg/response"
)

// RoleAdmin and RoleUser are the two roles the API knows about.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// HasRole allows access only to principals whose role is in the given set.
// No principal yields 401; a wrong role yields 403.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := middleware.PrincipalFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}
			if !allowed[p.Role] {
				response.Forbidden(w, "You do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Ownership allows admins through unconditionally; any other principal must
// own the resource. The owner id is read from the named URL parameter first,
// then the JSON body, then the query string. A missing owner id is a 400,
// a mismatch is a 403.
func Ownership(field string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := middleware.PrincipalFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}
			if p.Role == RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			owner := ownerID(r, field)
			if owner == "" {
				response.BadRequest(w, "Owner id is required")
				return
			}
			if owner != p.ID {
				response.Forbidden(w, "You can only modify your own resources")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ownerID resolves the owner id with params > body > query precedence.
// The body is re-buffered so the downstream handler can still decode it.
func ownerID(r *http.Request, field string) string {
	if v := chi.URLParam(r, field); v != "" {
		return v
	}

	if r.Body != nil && r.Body != http.NoBody {
		raw, err := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(raw))
		if err == nil && len(raw) > 0 {
			var body map[string]json.RawMessage
			if json.Unmarshal(raw, &body) == nil {
				if rawField, ok := body[field]; ok {
					var s string
					if json.Unmarshal(rawField, &s) == nil && s != "" {
						return s
					}
				}
			}
		}
	}

	return r.URL.Query().Get(field)
}
