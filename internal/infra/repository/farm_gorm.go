package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portal/internal/domain/model"
	repo "portal/internal/repository"
)

type VarietyGormRepository struct {
	db *gorm.DB
}

func NewVarietyGormRepository(db *gorm.DB) *VarietyGormRepository {
	return &VarietyGormRepository{db: db}
}

func (r *VarietyGormRepository) FindByID(ctx context.Context, varietyID int64) (model.CropVariety, error) {
	var v model.CropVariety
	err := r.db.WithContext(ctx).First(&v, "id = ?", varietyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CropVariety{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CropVariety{}, err
	}
	return v, nil
}

func (r *VarietyGormRepository) List(ctx context.Context) ([]model.CropVariety, error) {
	var varieties []model.CropVariety
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&varieties).Error; err != nil {
		return nil, err
	}
	return varieties, nil
}

func (r *VarietyGormRepository) Create(ctx context.Context, v model.CropVariety) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return 0, err
	}
	return v.ID, nil
}

type PlantingGormRepository struct {
	db *gorm.DB
}

func NewPlantingGormRepository(db *gorm.DB) *PlantingGormRepository {
	return &PlantingGormRepository{db: db}
}

func (r *PlantingGormRepository) List(ctx context.Context) ([]model.TrayPlanting, error) {
	var plantings []model.TrayPlanting
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&plantings).Error; err != nil {
		return nil, err
	}
	return plantings, nil
}

func (r *PlantingGormRepository) Create(ctx context.Context, p model.TrayPlanting) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *PlantingGormRepository) UpdateStatus(ctx context.Context, plantingID int64, status model.PlantingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.TrayPlanting{}).
		Where("id = ?", plantingID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type HarvestGormRepository struct {
	db *gorm.DB
}

func NewHarvestGormRepository(db *gorm.DB) *HarvestGormRepository {
	return &HarvestGormRepository{db: db}
}

func (r *HarvestGormRepository) List(ctx context.Context) ([]model.Harvest, error) {
	var harvests []model.Harvest
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&harvests).Error; err != nil {
		return nil, err
	}
	return harvests, nil
}

func (r *HarvestGormRepository) Create(ctx context.Context, h model.Harvest) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&h).Error; err != nil {
		return 0, err
	}
	return h.ID, nil
}
