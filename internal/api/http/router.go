package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-approval/internal/api/http/handlers"
	"github.com/spec-kit/student-approval/internal/auth"
	"github.com/spec-kit/student-approval/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Navigation     *handlers.NavigationHandler
	Submissions    *handlers.SubmissionsHandler
	Approvals      *handlers.ApprovalsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Get("/session", cfg.Auth.Session)

	app.Get("/navigation/resolve", cfg.AuthMiddleware.Optional, cfg.Navigation.Resolve)

	userGroup := app.Group("/api/user", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleUser))
	userGroup.Post("/submissions", cfg.Submissions.Create)
	userGroup.Get("/submissions", cfg.Submissions.ListOwn)

	managerGroup := app.Group("/api/manager", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleManager))
	managerGroup.Get("/submissions", cfg.Approvals.List)
	managerGroup.Post("/submissions/:id/approve", cfg.Approvals.Approve)
	managerGroup.Post("/submissions/:id/reject", cfg.Approvals.Reject)
}
