package auth

import (
	"log/slog"
	"net/http"
)

// RBACAuthorization gates routes on the static role-permission table.
// Unauthenticated requests get 401; authenticated requests lacking the
// permission get 403.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

func (ra *RBACAuthorization) Check(next http.HandlerFunc, permission Permission) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok || session == nil {
			ra.logger.Warn("authorization check failed: no session in context")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if !HasPermission(session.Role, permission) {
			ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"user_id", session.UserID,
				"role", session.Role,
				"required_permission", permission)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// Require returns a chi-compatible middleware enforcing the permission.
func (ra *RBACAuthorization) Require(permission Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, permission)
	}
}

// RequireRead gates on "<resource>:read".
func (ra *RBACAuthorization) RequireRead(resource string) func(http.Handler) http.Handler {
	return ra.Require(ReadPermission(resource))
}

// RequireWrite gates on "<resource>:write".
func (ra *RBACAuthorization) RequireWrite(resource string) func(http.Handler) http.Handler {
	return ra.Require(WritePermission(resource))
}
