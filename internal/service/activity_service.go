package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/anonqa-service/internal/events"
)

// ActivityService records domain events in the server log. It is the only
// event consumer; there is no outbound delivery of any kind.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	return &ActivityService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserCreated, a.handleUserCreated)
	a.dispatcher.Subscribe(events.EventMessageCreated, a.handleMessageCreated)
	a.dispatcher.Subscribe(events.EventMessageDeleted, a.handleMessageDeleted)
}

func (a *ActivityService) handleUserCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("UserCreated", zap.String("user_id", event.UserID))
	return nil
}

func (a *ActivityService) handleMessageCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("MessageCreated",
		zap.String("user_id", event.UserID),
		zap.String("message_id", event.MessageID))
	return nil
}

func (a *ActivityService) handleMessageDeleted(ctx context.Context, event events.Event) error {
	a.logger.Info("MessageDeleted",
		zap.String("user_id", event.UserID),
		zap.String("message_id", event.MessageID))
	return nil
}
