package middleware

import (
	"net/http"

	"clinic-management-server/internal/domain/entity"
	"clinic-management-server/pkg/response"
)

// RequireRole gates a subtree to one role. Must run after Authenticate.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Invalid token")
				return
			}
			if current != role {
				response.Forbidden(w, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireDoctor restricts prescribing endpoints to clinician accounts
func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleDoctor)(next)
}
