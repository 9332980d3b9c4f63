package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/codecraft/employee-directory/internal/auth"
	"github.com/codecraft/employee-directory/internal/employee"
	"github.com/codecraft/employee-directory/internal/transport/middleware"
	"github.com/codecraft/employee-directory/internal/transport/swagger"
	"github.com/codecraft/employee-directory/internal/user"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes wires the full HTTP surface: public pages and the
// employee directory, auth endpoints, and the gated dashboard/admin routes.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	employeeHandler *employee.Handler,
	userHandler *user.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)
	pagesHandler := NewPagesHandler()
	roles := auth.NewRoleAuthorization(logger)

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/", pagesHandler.Landing)
	router.Get("/about", pagesHandler.About)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Directory browsing is public.
		r.Route("/employees", func(er chi.Router) {
			er.Get("/", employeeHandler.ListEmployees)
			er.Get("/{id}", employeeHandler.GetEmployee)
		})

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Routes that require an authenticated session.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/dashboard", userHandler.Dashboard)

			pr.Group(func(ar chi.Router) {
				ar.Use(roles.RequireRole(auth.RoleAdmin))
				ar.Get("/admin", userHandler.Admin)
			})
		})
	})
}
