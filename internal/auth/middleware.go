package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/osa-portal/osa-portal/internal/platform/httpx"
	"github.com/osa-portal/osa-portal/internal/shared"
)

// Middleware authenticates bearer tokens and enforces role requirements.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Authenticate resolves the Authorization header to an active user and
// attaches the identity to the request context. Missing or invalid
// credentials end the request with 401.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpx.Fail(w, http.StatusUnauthorized, "access token required")
			return
		}
		user, err := m.Service.ResolveToken(r.Context(), token)
		if err != nil {
			httpx.Fail(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		ctx := shared.ContextWithIdentity(r.Context(), user.Identity())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles ends the request with 403 unless the authenticated identity
// holds one of the listed roles.
func (m Middleware) RequireRoles(roles ...shared.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := shared.IdentityFromContext(r.Context())
			if identity == nil {
				httpx.Fail(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			if m.Logger != nil {
				m.Logger.Warn("role check failed",
					slog.String("path", r.URL.Path),
					slog.String("role", string(identity.Role)))
			}
			httpx.Fail(w, http.StatusForbidden, "you do not have permission to perform this action")
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
