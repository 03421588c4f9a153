// Package memstore はRepositoryインタフェースのインメモリ実装。
// 起動してすぐ使えるデフォルトのストアで、DATABASE_URLを設定すると
// 同じインタフェースのGORM実装に差し替わる。
package memstore

import (
	"context"
	"sync"

	"portal/internal/domain/model"
	"portal/internal/repository"
)

type BatchStore struct {
	mu      sync.RWMutex
	batches []model.InventoryBatch
}

func NewBatchStore() *BatchStore {
	return &BatchStore{batches: []model.InventoryBatch{}}
}

func (s *BatchStore) FindByID(ctx context.Context, batchID string) (model.InventoryBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.batches {
		if b.ID == batchID {
			return b, nil
		}
	}
	return model.InventoryBatch{}, repository.ErrNotFound
}

func (s *BatchStore) List(ctx context.Context, f repository.BatchListFilter) ([]model.InventoryBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.InventoryBatch, 0, len(s.batches))
	for _, b := range s.batches {
		if f.Variety != "" && b.Variety != f.Variety {
			continue
		}
		if f.Status != "" && string(b.Status) != f.Status {
			continue
		}
		if f.HarvestedFrom != nil && b.HarvestDate.Before(*f.HarvestedFrom) {
			continue
		}
		if f.HarvestedTo != nil && b.HarvestDate.After(*f.HarvestedTo) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *BatchStore) Create(ctx context.Context, b model.InventoryBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches = append(s.batches, b)
	return nil
}

func (s *BatchStore) SetTrayCount(ctx context.Context, batchID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.batches {
		if s.batches[i].ID == batchID {
			s.batches[i].TrayCount = count
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *BatchStore) UpdateMeta(ctx context.Context, b model.InventoryBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.batches {
		if s.batches[i].ID == b.ID {
			// TrayCountは据え置き。変更はSetTrayCountだけが行う。
			b.TrayCount = s.batches[i].TrayCount
			s.batches[i] = b
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *BatchStore) Delete(ctx context.Context, batchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.batches {
		if s.batches[i].ID == batchID {
			s.batches = append(s.batches[:i], s.batches[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
