package memstore

import (
	"context"
	"sync"

	"portal/internal/domain/model"
	"portal/internal/repository"
)

type OrderStore struct {
	mu     sync.RWMutex
	orders []model.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: []model.Order{}}
}

func (s *OrderStore) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == orderID {
			return cloneOrder(o), nil
		}
	}
	return model.Order{}, repository.ErrNotFound
}

func (s *OrderStore) List(ctx context.Context, f repository.OrderListFilter) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		if f.From != nil && o.OrderDate.Before(*f.From) {
			continue
		}
		if f.To != nil && o.OrderDate.After(*f.To) {
			continue
		}
		if f.PickupFrom != nil && o.PickupDate.Before(*f.PickupFrom) {
			continue
		}
		if f.PickupTo != nil && o.PickupDate.After(*f.PickupTo) {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (s *OrderStore) Create(ctx context.Context, order model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append(s.orders, cloneOrder(order))
	return nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

// 明細スライスを共有させない。
func cloneOrder(o model.Order) model.Order {
	items := make([]model.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
