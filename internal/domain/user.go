package domain

import (
	"errors"
	"time"
)

// ErrUserNotFound is returned when a user id or email resolves to nothing.
var ErrUserNotFound = errors.New("user not found")

// Roles a user account can carry.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a persisted user record.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
