package memstore

import (
	"context"
	"sync"

	"portal/internal/domain/model"
	"portal/internal/repository"
)

type NotificationStore struct {
	mu            sync.RWMutex
	notifications []model.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{notifications: []model.Notification{}}
}

func (s *NotificationStore) List(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *NotificationStore) Create(ctx context.Context, n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, n)
	return nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, notificationID string) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == notificationID {
			s.notifications[i].IsRead = true
			return s.notifications[i], nil
		}
	}
	return model.Notification{}, repository.ErrNotFound
}
