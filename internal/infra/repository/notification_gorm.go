package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portal/internal/domain/model"
	repo "portal/internal/repository"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) List(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	q := r.db.WithContext(ctx).Model(&model.Notification{})
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var notifications []model.Notification
	if err := q.Order("timestamp ASC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationGormRepository) Create(ctx context.Context, n model.Notification) error {
	return r.db.WithContext(ctx).Create(&n).Error
}

func (r *NotificationGormRepository) MarkRead(ctx context.Context, notificationID string) (model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", notificationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Notification{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Notification{}, err
	}

	n.IsRead = true
	if err := r.db.WithContext(ctx).Model(&n).Update("is_read", true).Error; err != nil {
		return model.Notification{}, err
	}
	return n, nil
}
