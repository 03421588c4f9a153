package repository

import (
	"context"

	"gorm.io/gorm"

	"portal/internal/domain/model"
)

type AdjustmentLogGormRepository struct {
	db *gorm.DB
}

func NewAdjustmentLogGormRepository(db *gorm.DB) *AdjustmentLogGormRepository {
	return &AdjustmentLogGormRepository{db: db}
}

func (r *AdjustmentLogGormRepository) Append(ctx context.Context, entry model.AdjustmentLog) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *AdjustmentLogGormRepository) ListByBatchID(ctx context.Context, batchID string) ([]model.AdjustmentLog, error) {
	var entries []model.AdjustmentLog
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("timestamp ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
