package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"portal/internal/domain/model"
	"portal/internal/infra/memstore"
	repo "portal/internal/repository"
	"portal/internal/usecase"
)

type orderFixture struct {
	uc     *usecase.OrderUsecase
	ledger *usecase.LedgerUsecase
	orders *memstore.OrderStore
	logs   *memstore.AdjustmentLogStore
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	logs := memstore.NewAdjustmentLogStore()
	ledger := usecase.NewLedgerUsecase(
		memstore.NewBatchStore(), logs, memstore.NewNotificationStore(), noopSink{},
		0,
		&seqIDGen{},
		&fixedClock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
		zap.NewNop(),
	)
	orders := memstore.NewOrderStore()
	return &orderFixture{
		uc:     usecase.NewOrderUsecase(orders, ledger, &seqIDGen{n: 1000}, &fixedClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}, zap.NewNop()),
		ledger: ledger,
		orders: orders,
		logs:   logs,
	}
}

func (f *orderFixture) createBatch(t *testing.T, variety string, trays int) model.InventoryBatch {
	t.Helper()

	b, err := f.ledger.CreateBatch(context.Background(), usecase.BatchInput{
		Variety:   variety,
		TrayCount: trays,
		Status:    model.BatchStatusInStorage,
	}, "test")
	assert.NoError(t, err)
	return b
}

func (f *orderFixture) trayCount(t *testing.T, batchID string) int {
	t.Helper()

	b, err := f.ledger.GetBatch(context.Background(), batchID)
	assert.NoError(t, err)
	return b.TrayCount
}

// =====================
// PlaceOrder
// =====================

func TestOrderUsecase_PlaceOrder_DebitsAllLines(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	a := f.createBatch(t, "Sunflower", 10)
	b := f.createBatch(t, "Radish", 5)

	price := 12.5
	o, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		CustomerName: "Green Cafe",
		PickupDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Items: []usecase.OrderLineInput{
			{BatchID: a.ID, Variety: "Sunflower", Quantity: 4, PricePerTray: &price},
			{BatchID: b.ID, Variety: "Radish", Quantity: 2},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, o.Status)
	assert.Len(t, o.Items, 2)

	// 単価未指定の明細は既定単価10.0で計上される。
	assert.Equal(t, 4*12.5+2*10.0, o.TotalPrice)

	assert.Equal(t, 6, f.trayCount(t, a.ID))
	assert.Equal(t, 3, f.trayCount(t, b.ID))

	got, err := f.uc.GetOrder(ctx, o.ID)
	assert.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
}

func TestOrderUsecase_PlaceOrder_Validation(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	a := f.createBatch(t, "Kale", 3)

	_, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{CustomerName: " ", Items: []usecase.OrderLineInput{{BatchID: a.ID, Variety: "Kale", Quantity: 1}}})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	_, err = f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{CustomerName: "x"})
	_, ok = usecase.AsHTTPError(err)
	assert.True(t, ok)

	_, err = f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		CustomerName: "x",
		Items:        []usecase.OrderLineInput{{BatchID: a.ID, Variety: "Kale", Quantity: 0}},
	})
	_, ok = usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 3, f.trayCount(t, a.ID))
}

func TestOrderUsecase_PlaceOrder_RollsBackOnInsufficientStock(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	a := f.createBatch(t, "Sunflower", 3)
	b := f.createBatch(t, "Radish", 1)

	_, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		CustomerName: "Green Cafe",
		Items: []usecase.OrderLineInput{
			{BatchID: a.ID, Variety: "Sunflower", Quantity: 2},
			{BatchID: b.ID, Variety: "Radish", Quantity: 2},
		},
	})

	var rejected *usecase.OrderRejectedError
	assert.ErrorAs(t, err, &rejected)
	assert.ErrorIs(t, err, usecase.ErrInsufficientStock)

	// 先行した引当は戻り、どちらのバッチも元のまま。
	assert.Equal(t, 3, f.trayCount(t, a.ID))
	assert.Equal(t, 1, f.trayCount(t, b.ID))

	// 失敗の痕跡は履歴に残る。debitとその巻き戻しのペア。
	logs, lerr := f.logs.ListByBatchID(ctx, a.ID)
	assert.NoError(t, lerr)
	assert.Len(t, logs, 3)
	assert.Equal(t, -2, logs[1].Delta)
	assert.Equal(t, 2, logs[2].Delta)
	assert.Contains(t, logs[2].Reason, "Reverted failed order")

	// 注文は保存されない。
	orders, oerr := f.uc.ListOrders(ctx, repo.OrderListFilter{})
	assert.NoError(t, oerr)
	assert.Empty(t, orders)
}

func TestOrderUsecase_PlaceOrder_VarietyMismatchCheckedBeforeDebit(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	a := f.createBatch(t, "Sunflower", 5)
	b := f.createBatch(t, "Radish", 5)

	// 2明細目の不一致でも、1明細目の引当が始まる前に弾く。
	_, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		CustomerName: "Green Cafe",
		Items: []usecase.OrderLineInput{
			{BatchID: a.ID, Variety: "Sunflower", Quantity: 2},
			{BatchID: b.ID, Variety: "Kale", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, usecase.ErrVarietyMismatch)

	assert.Equal(t, 5, f.trayCount(t, a.ID))
	assert.Equal(t, 5, f.trayCount(t, b.ID))

	logs, lerr := f.logs.ListByBatchID(ctx, a.ID)
	assert.NoError(t, lerr)
	assert.Len(t, logs, 1)
}

func TestOrderUsecase_PlaceOrder_UnknownBatch(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		CustomerName: "x",
		Items:        []usecase.OrderLineInput{{BatchID: "missing", Variety: "Kale", Quantity: 1}},
	})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

// =====================
// UpdateStatus / Cancel
// =====================

func TestOrderUsecase_UpdateStatus_ForwardOnly(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	a := f.createBatch(t, "Kale", 5)

	o, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		CustomerName: "x",
		Items:        []usecase.OrderLineInput{{BatchID: a.ID, Variety: "Kale", Quantity: 1}},
	})
	assert.NoError(t, err)

	o, err = f.uc.UpdateStatus(ctx, o.ID, model.OrderStatusConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, o.Status)

	// confirmed -> pending は戻れない。
	_, err = f.uc.UpdateStatus(ctx, o.ID, model.OrderStatusPending)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	o, err = f.uc.UpdateStatus(ctx, o.ID, model.OrderStatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, o.Status)

	// 終端からは動かせない。
	_, err = f.uc.UpdateStatus(ctx, o.ID, model.OrderStatusConfirmed)
	he, ok = usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Contains(t, he.Message, "completed")
}

func TestOrderUsecase_UpdateStatus_Invalid(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.UpdateStatus(context.Background(), "any", model.OrderStatus("shipped"))
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestOrderUsecase_Cancel_RestoresStockOnce(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	a := f.createBatch(t, "Kale", 5)

	o, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		CustomerName: "x",
		Items:        []usecase.OrderLineInput{{BatchID: a.ID, Variety: "Kale", Quantity: 3}},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, f.trayCount(t, a.ID))

	o, err = f.uc.Cancel(ctx, o.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, o.Status)
	assert.Equal(t, 5, f.trayCount(t, a.ID))

	// 再キャンセルは冪等なno-op。二重に戻さない。
	o, err = f.uc.Cancel(ctx, o.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, o.Status)
	assert.Equal(t, 5, f.trayCount(t, a.ID))
}

func TestOrderUsecase_Cancel_CommitsEvenIfRestoreFails(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	a := f.createBatch(t, "Kale", 5)

	o, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		CustomerName: "x",
		Items:        []usecase.OrderLineInput{{BatchID: a.ID, Variety: "Kale", Quantity: 3}},
	})
	assert.NoError(t, err)

	// バッチを消して戻し先を失わせる。履歴は残る。
	assert.NoError(t, f.ledger.RemoveBatch(ctx, a.ID, "test"))

	o, err = f.uc.Cancel(ctx, o.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, o.Status)

	got, err := f.uc.GetOrder(ctx, o.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, got.Status)
}

func TestOrderUsecase_ListOrders_FiltersByStatus(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	a := f.createBatch(t, "Kale", 10)

	o1, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		CustomerName: "x",
		Items:        []usecase.OrderLineInput{{BatchID: a.ID, Variety: "Kale", Quantity: 1}},
	})
	assert.NoError(t, err)
	_, err = f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		CustomerName: "y",
		Items:        []usecase.OrderLineInput{{BatchID: a.ID, Variety: "Kale", Quantity: 1}},
	})
	assert.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, o1.ID, model.OrderStatusConfirmed)
	assert.NoError(t, err)

	confirmed, err := f.uc.ListOrders(ctx, repo.OrderListFilter{Status: "confirmed"})
	assert.NoError(t, err)
	assert.Len(t, confirmed, 1)
	assert.Equal(t, o1.ID, confirmed[0].ID)

	all, err := f.uc.ListOrders(ctx, repo.OrderListFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
