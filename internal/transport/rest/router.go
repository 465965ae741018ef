package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/andikarahman/hr-management/internal/audit"
	"github.com/andikarahman/hr-management/internal/auth"
	"github.com/andikarahman/hr-management/internal/employee"
	"github.com/andikarahman/hr-management/internal/team"
	"github.com/andikarahman/hr-management/internal/transport/middleware"
	"github.com/andikarahman/hr-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, allowedOrigins string, authHandler *auth.Handler, employeeHandler *employee.Handler, teamHandler *team.Handler, auditHandler *audit.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
			// Logout needs the session for its audit entry.
			sr.With(authHandler.AuthMiddleware).Post("/logout", authHandler.Logout)
		})

		// Everything below requires a valid session.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", employeeHandler.ListEmployees)
				er.Post("/", employeeHandler.CreateEmployee)
				er.Get("/{id}", employeeHandler.GetEmployee)
				er.Put("/{id}", employeeHandler.UpdateEmployee)
				er.Delete("/{id}", employeeHandler.DeleteEmployee)
			})

			pr.Route("/teams", func(tr chi.Router) {
				tr.Get("/", teamHandler.ListTeams)
				tr.Post("/", teamHandler.CreateTeam)
				tr.Post("/assign", teamHandler.AssignEmployee)
				tr.Post("/remove", teamHandler.RemoveEmployee)
				tr.Get("/{id}", teamHandler.GetTeam)
				tr.Put("/{id}", teamHandler.UpdateTeam)
				tr.Delete("/{id}", teamHandler.DeleteTeam)
			})

			pr.Get("/logs", auditHandler.ListLogs)
		})
	})
}
