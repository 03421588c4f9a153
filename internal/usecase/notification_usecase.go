package usecase

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"portal/internal/domain/model"
	repo "portal/internal/repository"
)

// NotificationUsecase はアプリ内通知の管理。alertはメール送信も起動するが、
// 送信はバックグラウンドのベストエフォートで、作成の成否には影響しない。
type NotificationUsecase struct {
	notifications repo.NotificationRepository
	sink          NotificationSink
	idGen         IDGenerator
	clock         Clock
	log           *zap.Logger
}

func NewNotificationUsecase(
	notifications repo.NotificationRepository,
	sink NotificationSink,
	idGen IDGenerator,
	clock Clock,
	log *zap.Logger,
) *NotificationUsecase {
	return &NotificationUsecase{notifications: notifications, sink: sink, idGen: idGen, clock: clock, log: log}
}

func (u *NotificationUsecase) List(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	return u.notifications.List(ctx, unreadOnly)
}

type CreateNotificationInput struct {
	Message string
	Type    string
}

func (u *NotificationUsecase) Create(ctx context.Context, in CreateNotificationInput) (model.Notification, error) {
	if strings.TrimSpace(in.Message) == "" {
		return model.Notification{}, NewHTTPError(http.StatusBadRequest, "message is required")
	}

	typ := model.NotificationType(in.Type)
	if typ != model.NotificationTypeAlert && typ != model.NotificationTypeInfo {
		return model.Notification{}, NewHTTPError(http.StatusBadRequest, "type must be alert or info")
	}

	n := model.Notification{
		ID:        u.idGen.NewID(),
		Message:   in.Message,
		Type:      typ,
		Timestamp: u.clock.Now(),
	}
	if err := u.notifications.Create(ctx, n); err != nil {
		return model.Notification{}, err
	}

	if typ == model.NotificationTypeAlert {
		go func() {
			// リクエストのctxとは切り離す。
			if err := u.sink.Notify(context.Background(), "Alert: "+n.Message, n.Message); err != nil {
				u.log.Warn("failed to deliver alert email", zap.String("notification_id", n.ID), zap.Error(err))
			}
		}()
	}

	return n, nil
}

func (u *NotificationUsecase) MarkRead(ctx context.Context, notificationID string) (model.Notification, error) {
	return u.notifications.MarkRead(ctx, notificationID)
}
