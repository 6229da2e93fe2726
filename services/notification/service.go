package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	notificationRepo "pitchbook/database/repository/notification"
	"pitchbook/models"
	"pitchbook/utils"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
	Hub  *Hub
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository, hub *Hub) (*DefaultNotificationService, error) {
	if repo == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{Repo: repo, Hub: hub}, nil
}

// Notify stores the notification and pushes it to the user's live
// connections. Push delivery is best-effort; a user with no open socket
// still sees the notification on their next list fetch.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, notifType, title, message string, data map[string]any) error {
	n := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Data:      data,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Insert(ctx, n); err != nil {
		return fmt.Errorf("Notify: failed to persist notification: %w", err)
	}
	if s.Hub != nil {
		if err := s.Hub.SendToUser(userID, n); err != nil {
			utils.GetLogger().Debug("Notify: push skipped",
				zap.String("userID", userID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string, limit, offset int64) ([]models.Notification, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.Repo.MarkRead(ctx, userID, notificationID)
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.Repo.MarkAllRead(ctx, userID)
}

func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.Repo.CountUnread(ctx, userID)
}
