package repository

import (
	"context"

	"portal/internal/domain/model"
)

type VarietyRepository interface {
	FindByID(ctx context.Context, varietyID int64) (model.CropVariety, error)
	List(ctx context.Context) ([]model.CropVariety, error)
	Create(ctx context.Context, v model.CropVariety) (int64, error)
}

type PlantingRepository interface {
	List(ctx context.Context) ([]model.TrayPlanting, error)
	Create(ctx context.Context, p model.TrayPlanting) (int64, error)
	UpdateStatus(ctx context.Context, plantingID int64, status model.PlantingStatus) error
}

type HarvestRepository interface {
	List(ctx context.Context) ([]model.Harvest, error)
	Create(ctx context.Context, h model.Harvest) (int64, error)
}
