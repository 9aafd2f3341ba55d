package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reviewhub/review-service/internal/events"
	"github.com/reviewhub/review-service/internal/models"
)

// notificationService publishes user notifications to the event bus; actual
// delivery (mail, SMS) is owned by the topic consumers.
type notificationService struct {
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewNotificationService(publisher events.EventPublisher, logger *slog.Logger) NotificationService {
	return &notificationService{
		publisher: publisher,
		logger:    logger,
	}
}

func (s *notificationService) SendConfirmationCode(ctx context.Context, user *models.User, code string) error {
	event := events.ConfirmationCodeEvent{
		Username: user.Username,
		Email:    user.Email,
		Code:     code,
	}

	if err := s.publisher.Publish(ctx, events.EventConfirmationCode, event); err != nil {
		return fmt.Errorf("failed to publish confirmation code event: %w", err)
	}

	s.logger.Info("Confirmation code dispatched", "username", user.Username)
	return nil
}

func (s *notificationService) NotifyUserActivated(ctx context.Context, user *models.User) error {
	event := events.UserActivatedEvent{
		Username: user.Username,
		Email:    user.Email,
	}

	if err := s.publisher.Publish(ctx, events.EventUserActivated, event); err != nil {
		return fmt.Errorf("failed to publish activation event: %w", err)
	}

	return nil
}

func (s *notificationService) Close() error {
	return s.publisher.Close()
}
