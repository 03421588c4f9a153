package repository

import (
	"context"
	"time"

	"portal/internal/domain/model"
)

// 在庫一覧の絞り込み条件。
type BatchListFilter struct {
	Variety       string
	Status        string
	HarvestedFrom *time.Time
	HarvestedTo   *time.Time
}

type BatchRepository interface {
	FindByID(ctx context.Context, batchID string) (model.InventoryBatch, error)
	List(ctx context.Context, f BatchListFilter) ([]model.InventoryBatch, error)
	Create(ctx context.Context, b model.InventoryBatch) error

	// トレイ数の現在値を設定する。呼び出し元はLedgerのみ。
	SetTrayCount(ctx context.Context, batchID string, count int) error

	// トレイ数以外のメタ情報更新。
	UpdateMeta(ctx context.Context, b model.InventoryBatch) error

	Delete(ctx context.Context, batchID string) error
}
