package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-approval/internal/auth"
	"github.com/spec-kit/student-approval/internal/domain"
)

// NavigationHandler resolves which view a caller should land on. It runs the
// pure guard against the restored identity on every call; nothing is cached.
type NavigationHandler struct{}

// NewNavigationHandler constructs handler.
func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// Resolve handles GET /navigation/resolve?path=/manager-dashboard.
func (h *NavigationHandler) Resolve(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	requested := c.Query("path", string(auth.RouteLogin))

	var required domain.Role
	switch auth.Route(requested) {
	case auth.RouteManager:
		required = domain.RoleManager
	case auth.RouteUser:
		required = domain.RoleUser
	default:
		// Login and unknown paths are open; authenticated callers still get
		// steered to their role's home view.
		if identity == nil {
			return c.JSON(fiber.Map{"data": fiber.Map{"route": auth.RouteLogin}})
		}
		return c.JSON(fiber.Map{"data": fiber.Map{"route": auth.RouteForRole(identity.Role)}})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"route": auth.Resolve(identity, required)}})
}
