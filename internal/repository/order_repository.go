package repository

import (
	"context"
	"time"

	"portal/internal/domain/model"
)

type OrderListFilter struct {
	Status     string
	From       *time.Time
	To         *time.Time
	PickupFrom *time.Time
	PickupTo   *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)

	// 明細込みで作成。
	Create(ctx context.Context, order model.Order) error

	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}
