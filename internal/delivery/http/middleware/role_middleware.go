package middleware

import (
	"net/http"

	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/pkg/response"
)

// RequireRole allows the request through only when the authenticated
// principal holds one of the given roles. Unknown roles are denied.
func RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipalFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if principal.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}
