package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spendwise-app/spendwise-backend/internal/domain"
)

// GenerateToken signs a bearer token carrying the user's id, username and
// role. Tokens expire after ttl (30 days in the default configuration).
func GenerateToken(secret []byte, u *domain.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":       u.ID,
		"username": u.Username,
		"role":     u.Role,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}
