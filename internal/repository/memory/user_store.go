// Package memory provides mutex-guarded in-memory repository implementations
// with the same uniqueness semantics as the Postgres-backed ones. They serve
// the test suite and DSN-less development runs.
package memory

import (
	"context"
	"sync"

	"github.com/spec-kit/anonqa-service/internal/domain"
	"github.com/spec-kit/anonqa-service/internal/repository"
)

// UserStore is an in-memory repository.UserRepository.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserStore creates an empty store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

// Create inserts the user, enforcing user_id uniqueness under the lock so a
// racing duplicate observes ErrDuplicateKey exactly like a unique index.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; exists {
		return repository.ErrDuplicateKey
	}
	s.users[user.UserID] = *user
	return nil
}

// GetByID returns the stored user or ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

// Len reports the number of stored users.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
