package models

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUserNotFound is returned by user stores when no row matches a username.
var ErrUserNotFound = errors.New("user does not exist")

// ErrUsernameTaken is returned by user stores on a duplicate username.
var ErrUsernameTaken = errors.New("username already exists")

// User represents a user in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Omit from JSON output for security
	CreatedAt    time.Time `json:"createdAt"`
}

// LoginRequest defines the structure for user login and registration requests.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Claims defines the information stored in the JWT.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
