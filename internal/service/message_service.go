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

// maxListResults caps how many messages a single list call returns.
const maxListResults = 100

// MessageService coordinates anonymous answer submission, listing and
// owner-authorized deletion.
type MessageService struct {
	messages   repository.MessageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewMessageService constructs the service.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, dispatcher events.Dispatcher) *MessageService {
	return &MessageService{messages: messages, users: users, dispatcher: dispatcher}
}

// CreateMessage validates all fields, verifies the target user exists and the
// messageId is unused, then inserts. Either every check passes and the record
// persists, or nothing is written.
func (s *MessageService) CreateMessage(ctx context.Context, messageID, userID, question, answer string) (*domain.Message, error) {
	if !validation.MessageID(messageID) {
		return nil, apperrors.NewValidationError("Invalid messageId format")
	}
	if !validation.UserID(userID) {
		return nil, apperrors.NewValidationError("Invalid userId format")
	}
	if !validation.Question(question) {
		return nil, apperrors.NewValidationError("Invalid question format")
	}
	if !validation.Answer(answer) {
		return nil, apperrors.NewValidationError("Invalid answer format")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}

	if _, err := s.messages.GetByID(ctx, messageID); err == nil {
		return nil, apperrors.NewConflict("Message already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	msg := &domain.Message{
		MessageID: messageID,
		UserID:    userID,
		Question:  strings.TrimSpace(question),
		Answer:    strings.TrimSpace(answer),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// lost the unique-index race; exactly one writer wins
			return nil, apperrors.NewConflict("Message already exists")
		}
		return nil, err
	}

	s.publish(ctx, events.Event{Type: events.EventMessageCreated, UserID: userID, MessageID: messageID})
	return msg, nil
}

// ListMessages returns up to 100 messages for the user, newest first.
func (s *MessageService) ListMessages(ctx context.Context, userID string) ([]domain.Message, error) {
	if !validation.UserID(userID) {
		return nil, apperrors.NewValidationError("Invalid userId format")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}

	return s.messages.ListByUser(ctx, userID, maxListResults)
}

// DeleteMessage removes a message after verifying the caller-supplied userId
// matches the stored owner. Possession of the owner's id string is the sole
// authorization mechanism in this system.
func (s *MessageService) DeleteMessage(ctx context.Context, messageID, userID string) error {
	if !validation.MessageID(messageID) {
		return apperrors.NewValidationError("Invalid messageId format")
	}
	if !validation.UserID(userID) {
		return apperrors.NewValidationError("Invalid userId format")
	}

	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Message")
		}
		return err
	}

	if msg.UserID != userID {
		return apperrors.NewForbidden("Unauthorized: You can only delete your own messages")
	}

	if err := s.messages.Delete(ctx, messageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Message")
		}
		return err
	}

	s.publish(ctx, events.Event{Type: events.EventMessageDeleted, UserID: userID, MessageID: messageID})
	return nil
}

func (s *MessageService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
