package repository

import (
	"context"

	"portal/internal/domain/model"
)

type NotificationRepository interface {
	List(ctx context.Context, unreadOnly bool) ([]model.Notification, error)
	Create(ctx context.Context, n model.Notification) error
	MarkRead(ctx context.Context, notificationID string) (model.Notification, error)
}
