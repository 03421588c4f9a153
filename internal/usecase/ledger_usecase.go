package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"portal/internal/domain/model"
	"portal/internal/metrics"
	repo "portal/internal/repository"
)

// LedgerUsecase はバッチごとのトレイ数と調整履歴を管理する台帳。
// すべてのトレイ数変更はAdjustを通る。read-modify-write-logの列は
// 台帳スコープのmutexで直列化し、同一バッチへの同時調整で更新が
// 失われないことを保証する。
type LedgerUsecase struct {
	mu sync.Mutex

	batches       repo.BatchRepository
	logs          repo.AdjustmentLogRepository
	notifications repo.NotificationRepository
	sink          NotificationSink

	lowStockThreshold int

	idGen IDGenerator
	clock Clock
	log   *zap.Logger
}

func NewLedgerUsecase(
	batches repo.BatchRepository,
	logs repo.AdjustmentLogRepository,
	notifications repo.NotificationRepository,
	sink NotificationSink,
	lowStockThreshold int,
	idGen IDGenerator,
	clock Clock,
	log *zap.Logger,
) *LedgerUsecase {
	return &LedgerUsecase{
		batches:           batches,
		logs:              logs,
		notifications:     notifications,
		sink:              sink,
		lowStockThreshold: lowStockThreshold,
		idGen:             idGen,
		clock:             clock,
		log:               log,
	}
}

// Adjust はdeltaを適用して新しいトレイ数を返す。
// 負になる調整はErrInsufficientStockで拒否し、何も書き込まない。
func (u *LedgerUsecase) Adjust(ctx context.Context, batchID string, delta int, reason string, actor string) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.adjustLocked(ctx, batchID, delta, reason, actor)
}

// adjustLocked は呼び出し元がmutexを握っている前提。
func (u *LedgerUsecase) adjustLocked(ctx context.Context, batchID string, delta int, reason string, actor string) (int, error) {
	if strings.TrimSpace(actor) == "" {
		actor = "system"
	}

	b, err := u.batches.FindByID(ctx, batchID)
	if err != nil {
		return 0, err
	}

	newCount := b.TrayCount + delta
	if newCount < 0 {
		metrics.AdjustmentsRejected.Inc()
		return 0, fmt.Errorf("%w: batch %s would go to %d (%s)", ErrInsufficientStock, batchID, newCount, reason)
	}

	if err := u.batches.SetTrayCount(ctx, batchID, newCount); err != nil {
		return 0, err
	}
	if err := u.logs.Append(ctx, model.AdjustmentLog{
		ID:        u.idGen.NewID(),
		BatchID:   batchID,
		Delta:     delta,
		Reason:    reason,
		Timestamp: u.clock.Now(),
		Actor:     actor,
	}); err != nil {
		return 0, err
	}
	metrics.AdjustmentsApplied.Inc()

	u.log.Info("inventory adjusted",
		zap.String("batch_id", batchID),
		zap.Int("delta", delta),
		zap.Int("new_count", newCount),
		zap.String("reason", reason),
	)

	// 減算で閾値を下回ったとき（境界は厳密に「<」）だけアラート。
	// 通知の失敗は調整の成否に影響しない。
	if delta < 0 && newCount < u.lowStockThreshold {
		u.emitLowStockAlert(ctx, b.Variety, newCount)
	}

	return newCount, nil
}

func (u *LedgerUsecase) emitLowStockAlert(ctx context.Context, variety string, newCount int) {
	metrics.LowStockAlerts.Inc()
	msg := fmt.Sprintf("Low inventory: %s down to %d trays", variety, newCount)

	if err := u.notifications.Create(ctx, model.Notification{
		ID:        u.idGen.NewID(),
		Message:   msg,
		Type:      model.NotificationTypeAlert,
		Timestamp: u.clock.Now(),
	}); err != nil {
		u.log.Warn("failed to record low stock notification", zap.Error(err))
	}

	if err := u.sink.Notify(ctx, "Inventory Alert: "+variety, msg); err != nil {
		u.log.Warn("failed to deliver low stock alert", zap.String("variety", variety), zap.Error(err))
	}
}

func (u *LedgerUsecase) GetBatch(ctx context.Context, batchID string) (model.InventoryBatch, error) {
	return u.batches.FindByID(ctx, batchID)
}

func (u *LedgerUsecase) ListBatches(ctx context.Context, f repo.BatchListFilter) ([]model.InventoryBatch, error) {
	return u.batches.List(ctx, f)
}

// ListLogs はバッチが存在しない場合ErrNotFound。存在すれば空でも返す。
func (u *LedgerUsecase) ListLogs(ctx context.Context, batchID string) ([]model.AdjustmentLog, error) {
	if _, err := u.batches.FindByID(ctx, batchID); err != nil {
		return nil, err
	}
	return u.logs.ListByBatchID(ctx, batchID)
}

type BatchInput struct {
	Variety     string
	TrayCount   int
	HarvestDate time.Time
	WeightKg    *float64
	Status      model.BatchStatus
}

// CreateBatch は初期数を「initial creation」の調整として積むので、
// 保存則（現在数 == 履歴のdelta合計）は作成直後から成り立つ。
func (u *LedgerUsecase) CreateBatch(ctx context.Context, in BatchInput, actor string) (model.InventoryBatch, error) {
	if strings.TrimSpace(in.Variety) == "" {
		return model.InventoryBatch{}, NewHTTPError(http.StatusBadRequest, "variety is required")
	}
	if in.TrayCount < 0 {
		return model.InventoryBatch{}, NewHTTPError(http.StatusBadRequest, "tray count cannot be negative")
	}
	if !in.Status.Valid() {
		return model.InventoryBatch{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	harvestDate := in.HarvestDate
	if harvestDate.IsZero() {
		harvestDate = u.clock.Now()
	}

	b := model.InventoryBatch{
		ID:          u.idGen.NewID(),
		Variety:     in.Variety,
		TrayCount:   0,
		HarvestDate: harvestDate,
		WeightKg:    in.WeightKg,
		Status:      in.Status,
	}
	if err := u.batches.Create(ctx, b); err != nil {
		return model.InventoryBatch{}, err
	}

	newCount, err := u.adjustLocked(ctx, b.ID, in.TrayCount, "Initial creation", actor)
	if err != nil {
		return model.InventoryBatch{}, err
	}
	b.TrayCount = newCount

	return b, nil
}

// UpdateBatch はメタ情報のみ更新する。トレイ数の直接変更は拒否。
func (u *LedgerUsecase) UpdateBatch(ctx context.Context, batchID string, in BatchInput, trayCount *int) (model.InventoryBatch, error) {
	if !in.Status.Valid() {
		return model.InventoryBatch{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	b, err := u.batches.FindByID(ctx, batchID)
	if err != nil {
		return model.InventoryBatch{}, err
	}

	if trayCount != nil && *trayCount != b.TrayCount {
		return model.InventoryBatch{}, NewHTTPError(http.StatusBadRequest, "tray count must be updated via adjustments")
	}

	if in.Variety != "" {
		b.Variety = in.Variety
	}
	if !in.HarvestDate.IsZero() {
		b.HarvestDate = in.HarvestDate
	}
	if in.WeightKg != nil {
		b.WeightKg = in.WeightKg
	}
	b.Status = in.Status

	if err := u.batches.UpdateMeta(ctx, b); err != nil {
		return model.InventoryBatch{}, err
	}
	return b, nil
}

// RemoveBatch は監査上の理由で、削除前に残数を0へ落とす調整を記録する。
func (u *LedgerUsecase) RemoveBatch(ctx context.Context, batchID string, actor string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	b, err := u.batches.FindByID(ctx, batchID)
	if err != nil {
		return err
	}

	if _, err := u.adjustLocked(ctx, batchID, -b.TrayCount, "Item removed", actor); err != nil {
		return err
	}
	return u.batches.Delete(ctx, batchID)
}
