package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/abefas/taskapi/models"
)

// UserStore keeps accounts in the users table.
type UserStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db, now: time.Now}
}

// Create inserts a user, returning models.ErrUsernameTaken for a duplicate username.
func (s *UserStore) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	var existing int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE username = $1", username).Scan(&existing)
	if err != nil {
		return models.User{}, fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		return models.User{}, models.ErrUsernameTaken
	}

	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    models.Timestamp(s.now()),
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users(id, username, password_hash, created_at) VALUES($1, $2, $3, $4)",
		u.ID, u.Username, u.PasswordHash, u.CreatedAt)
	if isUniqueViolation(err) {
		return models.User{}, models.ErrUsernameTaken
	} else if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// FindByUsername returns models.ErrUserNotFound when no row matches.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = $1", username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	} else if err != nil {
		return models.User{}, fmt.Errorf("select user: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

// isUniqueViolation catches the race between the count and the insert.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
