package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/themirzaalibaig/server-ecommerce/pkg/auth"
	"github.com/themirzaalibaig/server-ecommerce/pkg/response"
)

// Principal is the authenticated user attached to the request context.
// It is resolved from the database on every authenticated request, so a
// deleted or deactivated account is locked out even with a valid token.
type Principal struct {
	ID     string
	Role   string
	Active bool
}

// PrincipalResolver loads the persisted user behind a token's user id.
// Returning (nil, nil) means the user no longer exists.
type PrincipalResolver func(ctx context.Context, userID string) (*Principal, error)

type principalKey struct{}

// PrincipalFromCtx returns the authenticated principal, if any.
func PrincipalFromCtx(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// WithPrincipal stores a principal in ctx. Exposed for tests.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// Auth requires a valid Bearer token and resolves it to a persisted, active
// user. Missing, malformed, and expired tokens each get their own message;
// a deactivated account is rejected with 403.
func Auth(resolve PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Unauthorized(w, "Authentication required")
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				response.Unauthorized(w, "Authentication required")
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					response.Unauthorized(w, "Token has expired, please login again")
				} else {
					response.Unauthorized(w, "Invalid authentication token")
				}
				return
			}

			p, err := resolve(r.Context(), claims.UserID)
			if err != nil || p == nil {
				response.Unauthorized(w, "User not found")
				return
			}
			if !p.Active {
				response.Forbidden(w, "Account has been deactivated")
				return
			}

			ctx := WithPrincipal(r.Context(), p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
