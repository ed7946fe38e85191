package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-approval/internal/domain"
)

// RequireRole runs the navigation guard for routes that demand a specific
// role. An unauthenticated caller gets 401, a role mismatch gets 403; both
// responses carry the redirect target the guard resolved.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		route := Resolve(identity, required)

		if identity == nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error":       fiber.Map{"code": "UNAUTHORIZED", "message": http.StatusText(http.StatusUnauthorized)},
				"redirect_to": route,
			})
		}
		if identity.Role != required {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{
				"error":       fiber.Map{"code": "FORBIDDEN", "message": "role mismatch"},
				"redirect_to": route,
			})
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a caller has any restored identity.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
