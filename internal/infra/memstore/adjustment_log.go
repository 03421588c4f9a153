package memstore

import (
	"context"
	"sync"

	"portal/internal/domain/model"
)

type AdjustmentLogStore struct {
	mu      sync.RWMutex
	entries []model.AdjustmentLog
}

func NewAdjustmentLogStore() *AdjustmentLogStore {
	return &AdjustmentLogStore{entries: []model.AdjustmentLog{}}
}

func (s *AdjustmentLogStore) Append(ctx context.Context, entry model.AdjustmentLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	return nil
}

// 追記順のまま返す。
func (s *AdjustmentLogStore) ListByBatchID(ctx context.Context, batchID string) ([]model.AdjustmentLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.AdjustmentLog{}
	for _, e := range s.entries {
		if e.BatchID == batchID {
			out = append(out, e)
		}
	}
	return out, nil
}
