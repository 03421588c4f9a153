package repository

import (
	"context"

	"portal/internal/domain/model"
)

// 調整履歴は追記のみ。
type AdjustmentLogRepository interface {
	Append(ctx context.Context, entry model.AdjustmentLog) error
	ListByBatchID(ctx context.Context, batchID string) ([]model.AdjustmentLog, error)
}
