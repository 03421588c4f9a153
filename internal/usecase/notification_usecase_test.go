package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"portal/internal/domain/model"
	"portal/internal/infra/memstore"
	repo "portal/internal/repository"
	"portal/internal/usecase"
)

type chanSink struct{ sent chan string }

func (s *chanSink) Notify(ctx context.Context, subject string, body string) error {
	s.sent <- subject
	return nil
}

func newNotificationFixture(t *testing.T) (*usecase.NotificationUsecase, *memstore.NotificationStore, *chanSink) {
	t.Helper()

	store := memstore.NewNotificationStore()
	sink := &chanSink{sent: make(chan string, 1)}
	uc := usecase.NewNotificationUsecase(store, sink, &seqIDGen{}, &fixedClock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}, zap.NewNop())
	return uc, store, sink
}

func TestNotificationUsecase_Create_Info(t *testing.T) {
	uc, store, sink := newNotificationFixture(t)

	n, err := uc.Create(context.Background(), usecase.CreateNotificationInput{Message: "harvest logged", Type: "info"})
	assert.NoError(t, err)
	assert.Equal(t, model.NotificationTypeInfo, n.Type)
	assert.False(t, n.IsRead)

	stored, err := store.List(context.Background(), false)
	assert.NoError(t, err)
	assert.Len(t, stored, 1)

	// infoはメールを出さない。
	select {
	case subject := <-sink.sent:
		t.Fatalf("unexpected email: %s", subject)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotificationUsecase_Create_AlertSendsEmail(t *testing.T) {
	uc, _, sink := newNotificationFixture(t)

	_, err := uc.Create(context.Background(), usecase.CreateNotificationInput{Message: "trays running low", Type: "alert"})
	assert.NoError(t, err)

	select {
	case subject := <-sink.sent:
		assert.Contains(t, subject, "trays running low")
	case <-time.After(2 * time.Second):
		t.Fatal("alert email was never sent")
	}
}

func TestNotificationUsecase_Create_Validation(t *testing.T) {
	uc, _, _ := newNotificationFixture(t)

	_, err := uc.Create(context.Background(), usecase.CreateNotificationInput{Message: " ", Type: "info"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	_, err = uc.Create(context.Background(), usecase.CreateNotificationInput{Message: "x", Type: "warning"})
	_, ok = usecase.AsHTTPError(err)
	assert.True(t, ok)
}

func TestNotificationUsecase_MarkRead(t *testing.T) {
	uc, _, _ := newNotificationFixture(t)

	n, err := uc.Create(context.Background(), usecase.CreateNotificationInput{Message: "x", Type: "info"})
	assert.NoError(t, err)

	read, err := uc.MarkRead(context.Background(), n.ID)
	assert.NoError(t, err)
	assert.True(t, read.IsRead)

	unread, err := uc.List(context.Background(), true)
	assert.NoError(t, err)
	assert.Empty(t, unread)

	_, err = uc.MarkRead(context.Background(), "missing")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
