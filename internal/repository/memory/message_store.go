package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/anonqa-service/internal/domain"
	"github.com/spec-kit/anonqa-service/internal/repository"
)

// MessageStore is an in-memory repository.MessageRepository.
type MessageStore struct {
	mu       sync.RWMutex
	messages map[string]domain.Message
}

// NewMessageStore creates an empty store.
func NewMessageStore() *MessageStore {
	return &MessageStore{messages: make(map[string]domain.Message)}
}

// Create inserts the message, enforcing message_id uniqueness.
func (s *MessageStore) Create(ctx context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.messages[msg.MessageID]; exists {
		return repository.ErrDuplicateKey
	}
	s.messages[msg.MessageID] = *msg
	return nil
}

// GetByID returns the stored message or ErrNotFound.
func (s *MessageStore) GetByID(ctx context.Context, messageID string) (*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, exists := s.messages[messageID]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &msg, nil
}

// ListByUser returns up to limit messages for the user, newest first.
func (s *MessageStore) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Message
	for _, msg := range s.messages {
		if msg.UserID == userID {
			result = append(result, msg)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Delete removes the message or reports ErrNotFound.
func (s *MessageStore) Delete(ctx context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.messages[messageID]; !exists {
		return repository.ErrNotFound
	}
	delete(s.messages, messageID)
	return nil
}

// Len reports the number of stored messages.
func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
