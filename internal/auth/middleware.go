package auth

import (
	"context"
	"net/http"
	"strings"

	"prefscale/internal/httpapi"
)

// Identity is what a verified token proves about the caller. AccountID and
// Email are zero for the configured admin identity.
type Identity struct {
	AccountID int64
	Email     string
	Role      Role
}

type contextKey string

const identityContextKey contextKey = "prefscale_identity"

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(*Identity)
	return id, ok
}

// Middleware verifies the bearer token and attaches the caller's identity.
// Missing, malformed, expired and wrong-secret tokens all get the same 401.
func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				httpapi.WriteError(w, httpapi.Unauthorized("No token provided"))
				return
			}
			token := strings.TrimPrefix(h, "Bearer ")
			claims, err := svc.ParseToken(token)
			if err != nil {
				httpapi.WriteError(w, httpapi.Unauthorized("Invalid token"))
				return
			}
			id := &Identity{
				AccountID: claims.AccountID,
				Email:     claims.Email,
				Role:      claims.Role,
			}
			ctx := WithIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a handler on the admin role. It assumes Middleware ran
// first; a missing identity is treated as unauthenticated.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			httpapi.WriteError(w, httpapi.Unauthorized("No token provided"))
			return
		}
		if id.Role != RoleAdmin {
			httpapi.WriteError(w, httpapi.Forbidden("Admin only"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
