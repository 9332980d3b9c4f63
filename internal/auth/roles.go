package auth

import (
	"log/slog"
	"net/http"

	"github.com/codecraft/employee-directory/internal"
	"github.com/codecraft/employee-directory/internal/transport"
)

// RoleAuthorization gates route groups on role membership. It reads the
// user AuthMiddleware placed in the context, so it must run after it.
type RoleAuthorization struct {
	*transport.BaseHandler
}

func NewRoleAuthorization(lg *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{BaseHandler: transport.NewBaseHandler(lg)}
}

// RequireRole rejects requests whose user lacks the named role.
func (a *RoleAuthorization) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			currentUser, ok := UserFromContext(r.Context())
			if !ok || currentUser == nil {
				a.Logger.Error("role check: user not found in context", "role", role)
				a.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if !currentUser.HasRole(role) {
				a.Logger.Warn("role check failed",
					"user_id", currentUser.ID,
					"required_role", role,
					"roles", currentUser.Roles)
				a.HandleServiceError(w, internal.ErrRoleRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
