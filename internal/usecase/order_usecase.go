package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"portal/internal/domain/model"
	"portal/internal/metrics"
	repo "portal/internal/repository"
)

// 明細に単価が無いときに使う既定単価。
const defaultPricePerTray = 10.0

// Ledger はOrderUsecaseが在庫へ触れる唯一の窓口。
type Ledger interface {
	Adjust(ctx context.Context, batchID string, delta int, reason string, actor string) (int, error)
	GetBatch(ctx context.Context, batchID string) (model.InventoryBatch, error)
}

// OrderUsecase は注文を明細ごとの在庫引当の列として組み立てる。
// 全明細が通れば成立、どれか一つでも失敗したら適用済みの引当を
// すべて戻してOrderRejectedErrorで失敗する（all-or-nothing）。
type OrderUsecase struct {
	orders repo.OrderRepository
	ledger Ledger
	idGen  IDGenerator
	clock  Clock
	log    *zap.Logger
}

func NewOrderUsecase(orders repo.OrderRepository, ledger Ledger, idGen IDGenerator, clock Clock, log *zap.Logger) *OrderUsecase {
	return &OrderUsecase{orders: orders, ledger: ledger, idGen: idGen, clock: clock, log: log}
}

type OrderLineInput struct {
	BatchID      string
	Variety      string
	Quantity     int
	PricePerTray *float64
}

type PlaceOrderInput struct {
	CustomerName    string
	CustomerContact string
	PickupDate      time.Time
	Items           []OrderLineInput
}

func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (model.Order, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "customer name is required")
	}
	if len(in.Items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "order must contain at least one item")
	}

	orderID := u.idGen.NewID()

	// 引当を始める前に、全明細の存在と品種を検証する。
	for i, line := range in.Items {
		if line.Quantity <= 0 {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("quantity must be positive for order item %d", i+1))
		}

		b, err := u.ledger.GetBatch(ctx, line.BatchID)
		if err != nil {
			return model.Order{}, err
		}
		if b.Variety != line.Variety {
			return model.Order{}, fmt.Errorf("%w: inventory item %s holds %q, not %q", ErrVarietyMismatch, line.BatchID, b.Variety, line.Variety)
		}
	}

	// 与えられた順に引き当てる。順序はロールバック保証の一部。
	applied := make([]OrderLineInput, 0, len(in.Items))
	for _, line := range in.Items {
		if _, err := u.ledger.Adjust(ctx, line.BatchID, -line.Quantity, fmt.Sprintf("Order %s", orderID), "system"); err != nil {
			u.rollback(ctx, orderID, applied)
			metrics.OrdersRejected.Inc()
			return model.Order{}, &OrderRejectedError{OrderID: orderID, Cause: err}
		}
		applied = append(applied, line)
	}

	now := u.clock.Now()
	items := make([]model.OrderItem, 0, len(in.Items))
	total := 0.0
	for _, line := range in.Items {
		price := defaultPricePerTray
		if line.PricePerTray != nil {
			price = *line.PricePerTray
		}
		total += float64(line.Quantity) * price

		items = append(items, model.OrderItem{
			ID:           u.idGen.NewID(),
			OrderID:      orderID,
			BatchID:      line.BatchID,
			Variety:      line.Variety,
			Quantity:     line.Quantity,
			PricePerTray: price,
		})
	}

	order := model.Order{
		ID:              orderID,
		CustomerName:    in.CustomerName,
		CustomerContact: in.CustomerContact,
		OrderDate:       now,
		PickupDate:      in.PickupDate,
		Status:          model.OrderStatusPending,
		Items:           items,
		TotalPrice:      total,
	}
	if err := u.orders.Create(ctx, order); err != nil {
		// 永続化に失敗したら debit を残さない。
		u.rollback(ctx, orderID, applied)
		return model.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	return order, nil
}

// rollback は適用済みの引当を戻す。戻しの失敗はログに残すだけで伝播させない。
// 黙ってdebitを失うより、貸し過ぎのバッチが残る方を選ぶ。
func (u *OrderUsecase) rollback(ctx context.Context, orderID string, applied []OrderLineInput) {
	for _, line := range applied {
		if _, err := u.ledger.Adjust(ctx, line.BatchID, line.Quantity, fmt.Sprintf("Reverted failed order %s", orderID), "system"); err != nil {
			metrics.ReversalFailures.Inc()
			u.log.Error("failed to revert inventory for rejected order",
				zap.String("order_id", orderID),
				zap.String("batch_id", line.BatchID),
				zap.Error(err),
			)
		}
	}
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID string) (model.Order, error) {
	return u.orders.FindByID(ctx, orderID)
}

func (u *OrderUsecase) ListOrders(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	return u.orders.List(ctx, f)
}

var statusRank = map[model.OrderStatus]int{
	model.OrderStatusPending:   0,
	model.OrderStatusConfirmed: 1,
	model.OrderStatusCompleted: 2,
}

// UpdateStatus はステータス遷移を適用する。cancelledへの遷移だけが
// 在庫の戻しを伴い、その戻しはベストエフォート。戻しに失敗しても
// ステータスはcancelledで確定する（方針としてキャンセルの記録を優先）。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	if !status.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status, must be one of: pending, confirmed, completed, cancelled")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return model.Order{}, err
	}

	// 同じステータスへの変更は冪等なno-op。
	// 特にキャンセル済み注文の再キャンセルは二重に戻してはいけない。
	if o.Status == status {
		return o, nil
	}

	if o.Status.Terminal() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("cannot change %s order", o.Status))
	}

	if status == model.OrderStatusCancelled {
		for _, it := range o.Items {
			if _, err := u.ledger.Adjust(ctx, it.BatchID, it.Quantity, fmt.Sprintf("Order %s cancelled", orderID), "system"); err != nil {
				metrics.ReversalFailures.Inc()
				u.log.Error("failed to restore inventory on cancellation",
					zap.String("order_id", orderID),
					zap.String("batch_id", it.BatchID),
					zap.Error(err),
				)
			}
		}
		metrics.OrdersCancelled.Inc()
	} else if statusRank[status] < statusRank[o.Status] {
		// confirmed/completed方向へは一方通行。
		return model.Order{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("cannot move order from %s back to %s", o.Status, status))
	}

	if err := u.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return model.Order{}, err
	}

	o.Status = status
	return o, nil
}

// Cancel は冪等。既にキャンセル済みなら注文をそのまま返す。
func (u *OrderUsecase) Cancel(ctx context.Context, orderID string) (model.Order, error) {
	return u.UpdateStatus(ctx, orderID, model.OrderStatusCancelled)
}
