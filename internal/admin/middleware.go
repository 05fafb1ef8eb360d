package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spendwise-app/spendwise-backend/internal/auth"
	"github.com/spendwise-app/spendwise-backend/internal/domain"
)

// RequireAdmin gates a route to accounts carrying the admin role. It runs
// after auth.Middleware, so the user is already resolved.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Please login to continue.")
		}
		if user.Role != domain.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}
