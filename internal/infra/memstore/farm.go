package memstore

import (
	"context"
	"sync"

	"portal/internal/domain/model"
	"portal/internal/repository"
)

type VarietyStore struct {
	mu        sync.RWMutex
	nextID    int64
	varieties []model.CropVariety
}

func NewVarietyStore() *VarietyStore {
	return &VarietyStore{nextID: 1, varieties: []model.CropVariety{}}
}

func (s *VarietyStore) FindByID(ctx context.Context, varietyID int64) (model.CropVariety, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.varieties {
		if v.ID == varietyID {
			return v, nil
		}
	}
	return model.CropVariety{}, repository.ErrNotFound
}

func (s *VarietyStore) List(ctx context.Context) ([]model.CropVariety, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.CropVariety, len(s.varieties))
	copy(out, s.varieties)
	return out, nil
}

func (s *VarietyStore) Create(ctx context.Context, v model.CropVariety) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = s.nextID
	s.nextID++
	s.varieties = append(s.varieties, v)
	return v.ID, nil
}

type PlantingStore struct {
	mu        sync.RWMutex
	nextID    int64
	plantings []model.TrayPlanting
}

func NewPlantingStore() *PlantingStore {
	return &PlantingStore{nextID: 1, plantings: []model.TrayPlanting{}}
}

func (s *PlantingStore) List(ctx context.Context) ([]model.TrayPlanting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.TrayPlanting, len(s.plantings))
	copy(out, s.plantings)
	return out, nil
}

func (s *PlantingStore) Create(ctx context.Context, p model.TrayPlanting) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	s.plantings = append(s.plantings, p)
	return p.ID, nil
}

func (s *PlantingStore) UpdateStatus(ctx context.Context, plantingID int64, status model.PlantingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plantings {
		if s.plantings[i].ID == plantingID {
			s.plantings[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

type HarvestStore struct {
	mu       sync.RWMutex
	nextID   int64
	harvests []model.Harvest
}

func NewHarvestStore() *HarvestStore {
	return &HarvestStore{nextID: 1, harvests: []model.Harvest{}}
}

func (s *HarvestStore) List(ctx context.Context) ([]model.Harvest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Harvest, len(s.harvests))
	copy(out, s.harvests)
	return out, nil
}

func (s *HarvestStore) Create(ctx context.Context, h model.Harvest) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h.ID = s.nextID
	s.nextID++
	s.harvests = append(s.harvests, h)
	return h.ID, nil
}
