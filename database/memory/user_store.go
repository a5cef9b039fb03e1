package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abefas/taskapi/models"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[string]models.User // by username
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]models.User)}
}

func (s *UserStore) Create(_ context.Context, username, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return models.User{}, models.ErrUsernameTaken
	}

	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    models.Timestamp(time.Now()),
	}
	s.users[username] = u
	return u, nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return u, nil
}
