package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portal/internal/domain/model"
	repo "portal/internal/repository"
)

type BatchGormRepository struct {
	db *gorm.DB
}

func NewBatchGormRepository(db *gorm.DB) *BatchGormRepository {
	return &BatchGormRepository{db: db}
}

func (r *BatchGormRepository) FindByID(ctx context.Context, batchID string) (model.InventoryBatch, error) {
	var b model.InventoryBatch
	err := r.db.WithContext(ctx).First(&b, "id = ?", batchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.InventoryBatch{}, repo.ErrNotFound
	}
	if err != nil {
		return model.InventoryBatch{}, err
	}
	return b, nil
}

func (r *BatchGormRepository) List(ctx context.Context, f repo.BatchListFilter) ([]model.InventoryBatch, error) {
	q := r.db.WithContext(ctx).Model(&model.InventoryBatch{})

	if f.Variety != "" {
		q = q.Where("variety = ?", f.Variety)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.HarvestedFrom != nil {
		q = q.Where("harvest_date >= ?", *f.HarvestedFrom)
	}
	if f.HarvestedTo != nil {
		q = q.Where("harvest_date <= ?", *f.HarvestedTo)
	}

	var batches []model.InventoryBatch
	if err := q.Order("created_at ASC").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *BatchGormRepository) Create(ctx context.Context, b model.InventoryBatch) error {
	return r.db.WithContext(ctx).Create(&b).Error
}

// トレイ数の現在値を設定
func (r *BatchGormRepository) SetTrayCount(ctx context.Context, batchID string, count int) error {
	res := r.db.WithContext(ctx).
		Model(&model.InventoryBatch{}).
		Where("id = ?", batchID).
		Update("tray_count", count)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// トレイ数以外のメタ情報だけ更新
func (r *BatchGormRepository) UpdateMeta(ctx context.Context, b model.InventoryBatch) error {
	res := r.db.WithContext(ctx).
		Model(&model.InventoryBatch{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"variety":      b.Variety,
			"harvest_date": b.HarvestDate,
			"weight_kg":    b.WeightKg,
			"status":       b.Status,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BatchGormRepository) Delete(ctx context.Context, batchID string) error {
	res := r.db.WithContext(ctx).Delete(&model.InventoryBatch{}, "id = ?", batchID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
