package usecase

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"portal/internal/domain/model"
	repo "portal/internal/repository"
)

// FarmUsecase は栽培サイクル側の読み取り中心の操作。
// ステータスは単純なフィールド更新のみで、台帳のような調整は伴わない。
type FarmUsecase struct {
	varieties repo.VarietyRepository
	plantings repo.PlantingRepository
	harvests  repo.HarvestRepository
	clock     Clock
	log       *zap.Logger
}

func NewFarmUsecase(
	varieties repo.VarietyRepository,
	plantings repo.PlantingRepository,
	harvests repo.HarvestRepository,
	clock Clock,
	log *zap.Logger,
) *FarmUsecase {
	return &FarmUsecase{varieties: varieties, plantings: plantings, harvests: harvests, clock: clock, log: log}
}

func (u *FarmUsecase) ListVarieties(ctx context.Context) ([]model.CropVariety, error) {
	return u.varieties.List(ctx)
}

// ListPlantings は収穫予定日を過ぎたgrowingをreadyへ進めてから返す。
func (u *FarmUsecase) ListPlantings(ctx context.Context) ([]model.TrayPlanting, error) {
	plantings, err := u.plantings.List(ctx)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	for i := range plantings {
		p := &plantings[i]
		if p.Status == model.PlantingStatusGrowing && !p.ExpectedHarvestDate.After(now) {
			if err := u.plantings.UpdateStatus(ctx, p.ID, model.PlantingStatusReady); err != nil {
				u.log.Warn("failed to mark planting ready", zap.Int64("planting_id", p.ID), zap.Error(err))
				continue
			}
			p.Status = model.PlantingStatusReady
		}
	}
	return plantings, nil
}

type CreatePlantingInput struct {
	VarietyID int64
	PlantDate time.Time
	TrayCount int
}

func (u *FarmUsecase) CreatePlanting(ctx context.Context, in CreatePlantingInput) (model.TrayPlanting, error) {
	if in.TrayCount < 1 {
		in.TrayCount = 1
	}
	if in.PlantDate.IsZero() {
		return model.TrayPlanting{}, NewHTTPError(http.StatusBadRequest, "plant_date is required")
	}

	v, err := u.varieties.FindByID(ctx, in.VarietyID)
	if err != nil {
		return model.TrayPlanting{}, err
	}

	now := u.clock.Now()
	expected := in.PlantDate.AddDate(0, 0, v.GrowCycleDays)

	status := model.PlantingStatusPlanted
	if in.PlantDate.Before(now.AddDate(0, 0, -1)) {
		status = model.PlantingStatusGrowing
	}
	if !expected.After(now) {
		status = model.PlantingStatusReady
	}

	p := model.TrayPlanting{
		VarietyID:           in.VarietyID,
		PlantDate:           in.PlantDate,
		ExpectedHarvestDate: expected,
		Status:              status,
		TrayCount:           in.TrayCount,
	}
	id, err := u.plantings.Create(ctx, p)
	if err != nil {
		return model.TrayPlanting{}, err
	}
	p.ID = id
	return p, nil
}

func (u *FarmUsecase) ListHarvests(ctx context.Context) ([]model.Harvest, error) {
	return u.harvests.List(ctx)
}
