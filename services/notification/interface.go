package notification

import (
	"context"

	"pitchbook/models"
)

// NotificationService persists notifications and pushes them to connected
// clients over the WebSocket hub.
type NotificationService interface {
	Notify(ctx context.Context, userID, notifType, title, message string, data map[string]any) error
	ListForUser(ctx context.Context, userID string, limit, offset int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}
