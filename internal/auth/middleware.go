package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/spendwise-app/spendwise-backend/internal/domain"
)

// UserLoader resolves a token's user id to the stored account. Returning
// domain.ErrUserNotFound means the account no longer exists.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Middleware verifies the Authorization bearer token, resolves it to a user
// and attaches that user to the request. Every protected route goes through
// here, so downstream handlers can assume CurrentUser succeeds.
func Middleware(secret []byte, users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Please login to continue.")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Please login to continue.")
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized. Invalid or expired token.")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized. Invalid or expired token.")
		}

		userID, ok := claims["id"].(string)
		if !ok || strings.TrimSpace(userID) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized. Invalid or expired token.")
		}

		user, err := users.GetByID(userContext(c), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load user")
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID)

		return c.Next()
	}
}

// CurrentUser returns the user attached by Middleware.
func CurrentUser(c *fiber.Ctx) (*domain.User, error) {
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		return u, nil
	}
	return nil, errors.New("user missing from request")
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
