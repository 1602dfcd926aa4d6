package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AchrafReyani/job-matching-platform/internal/middleware"
	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// RouterDeps groups what NewRouter needs.
type RouterDeps struct {
	// Middleware
	Verifier          middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	StatusRecorder    middleware.StatusRecorder

	// Operational endpoints
	DB             Pinger
	MetricsHandler http.Handler

	// Domain services
	AdminService       AdminServiceInterface
	MatchService       MatchServiceInterface
	ApplicationService ApplicationServiceInterface
}

// NewRouter wires every endpoint and the middleware chain.
//
// Middleware order:
//
//	Logging → Metrics → Recovery → CORS → SecurityHeaders → Auth → RateLimit(General) [→ RequireRole → RateLimit(Bulk)]
//
// /health and /metrics sit before Auth.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewMetricsMiddleware(deps.StatusRecorder))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())

	adminHandler := NewAdminHandler(deps.AdminService)
	appHandler := NewApplicationHandler(deps.MatchService, deps.ApplicationService)

	// --- unauthenticated ---
	r.Get("/health", NewHealthHandler(deps.DB))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- authenticated ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.Verifier))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))

			r.Route("/users", func(r chi.Router) {
				r.With(deps.RateLimiter.BulkOperationMiddleware()).Delete("/bulk/job-seekers", adminHandler.DeleteAllJobSeekers)
				r.With(deps.RateLimiter.BulkOperationMiddleware()).Delete("/bulk/companies", adminHandler.DeleteAllCompanies)
				r.Delete("/{id}", adminHandler.DeleteUser)
			})

			r.Route("/vacancies", func(r chi.Router) {
				r.With(deps.RateLimiter.BulkOperationMiddleware()).Delete("/bulk/all", adminHandler.DeleteAllVacancies)
				r.Delete("/{id}", adminHandler.DeleteVacancy)
			})
		})

		r.Route("/applications/{id}", func(r chi.Router) {
			r.With(middleware.RequireRole(model.RoleCompany)).Patch("/", appHandler.UpdateStatus)
			r.With(middleware.RequireRole(model.RoleJobSeeker, model.RoleCompany)).Delete("/match", appHandler.DeleteMatch)
		})
	})

	return r
}
