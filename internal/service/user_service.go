package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/anonqa-service/internal/domain"
	"github.com/spec-kit/anonqa-service/internal/events"
	"github.com/spec-kit/anonqa-service/internal/repository"
	"github.com/spec-kit/anonqa-service/internal/validation"
	apperrors "github.com/spec-kit/anonqa-service/pkg/util"
)

// UserService coordinates profile creation and lookup.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// CreateUser inserts the profile if absent. Creation is idempotent: a second
// call with an existing userId returns the stored record unchanged, including
// the case where a concurrent create wins the unique-index race.
func (s *UserService) CreateUser(ctx context.Context, userID, name string) (*domain.User, error) {
	if !validation.UserID(userID) {
		return nil, apperrors.NewValidationError("Invalid userId format")
	}
	if !validation.Username(name) {
		return nil, apperrors.NewValidationError("Invalid name (2-50 characters, alphanumeric only)")
	}

	existing, err := s.users.GetByID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// lost a creation race; the winner's record is authoritative
			return s.users.GetByID(ctx, userID)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{Type: events.EventUserCreated, UserID: user.UserID})
	return user, nil
}

// GetUser fetches a profile by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if !validation.UserID(userID) {
		return nil, apperrors.NewValidationError("Invalid userId format")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
