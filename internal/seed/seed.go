// Package seed は開発用のサンプルデータを流し込む。
// 生成する在庫と注文の履歴は台帳の保存則（現在数 == delta合計）を
// 満たすように、必ず調整ログとペアで書く。
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"portal/internal/domain/model"
	repo "portal/internal/repository"
	"portal/internal/usecase"
)

type Seeder struct {
	varieties repo.VarietyRepository
	plantings repo.PlantingRepository
	harvests  repo.HarvestRepository
	batches   repo.BatchRepository
	logs      repo.AdjustmentLogRepository
	orders    repo.OrderRepository
	idGen     usecase.IDGenerator
	clock     usecase.Clock
	log       *zap.Logger
	rng       *rand.Rand
}

func New(
	varieties repo.VarietyRepository,
	plantings repo.PlantingRepository,
	harvests repo.HarvestRepository,
	batches repo.BatchRepository,
	logs repo.AdjustmentLogRepository,
	orders repo.OrderRepository,
	idGen usecase.IDGenerator,
	clock usecase.Clock,
	log *zap.Logger,
) *Seeder {
	return &Seeder{
		varieties: varieties,
		plantings: plantings,
		harvests:  harvests,
		batches:   batches,
		logs:      logs,
		orders:    orders,
		idGen:     idGen,
		clock:     clock,
		log:       log,
		rng:       rand.New(rand.NewSource(clock.Now().UnixNano())),
	}
}

var defaultVarieties = []model.CropVariety{
	{Name: "Sunflower", GrowCycleDays: 10, ExpectedYieldPerTray: 200.0},
	{Name: "Pea Shoots", GrowCycleDays: 12, ExpectedYieldPerTray: 175.0},
	{Name: "Radish", GrowCycleDays: 8, ExpectedYieldPerTray: 150.0},
	{Name: "Broccoli", GrowCycleDays: 14, ExpectedYieldPerTray: 180.0},
	{Name: "Arugula", GrowCycleDays: 7, ExpectedYieldPerTray: 125.0},
	{Name: "Kale", GrowCycleDays: 10, ExpectedYieldPerTray: 160.0},
	{Name: "Wheatgrass", GrowCycleDays: 12, ExpectedYieldPerTray: 210.0},
}

func (s *Seeder) Run(ctx context.Context) error {
	now := s.clock.Now()

	varieties := make([]model.CropVariety, 0, len(defaultVarieties))
	for _, v := range defaultVarieties {
		id, err := s.varieties.Create(ctx, v)
		if err != nil {
			return err
		}
		v.ID = id
		varieties = append(varieties, v)
	}

	plantings, err := s.seedPlantings(ctx, now, varieties)
	if err != nil {
		return err
	}
	harvests, err := s.seedHarvests(ctx, now, varieties, plantings)
	if err != nil {
		return err
	}
	batches, err := s.seedBatches(ctx, varieties, plantings, harvests)
	if err != nil {
		return err
	}
	if err := s.seedOrders(ctx, now, batches); err != nil {
		return err
	}

	s.log.Info("sample data seeded",
		zap.Int("varieties", len(varieties)),
		zap.Int("plantings", len(plantings)),
		zap.Int("harvests", len(harvests)),
		zap.Int("batches", len(batches)),
	)
	return nil
}

func (s *Seeder) seedPlantings(ctx context.Context, now time.Time, varieties []model.CropVariety) ([]model.TrayPlanting, error) {
	out := []model.TrayPlanting{}
	for i := 0; i < 39; i++ {
		v := varieties[s.rng.Intn(len(varieties))]
		plantDate := now.AddDate(0, 0, -s.rng.Intn(61))
		expected := plantDate.AddDate(0, 0, v.GrowCycleDays)

		statuses := []model.PlantingStatus{
			model.PlantingStatusPlanted,
			model.PlantingStatusGrowing,
			model.PlantingStatusGrowing,
			model.PlantingStatusHarvested,
			model.PlantingStatusFailed,
		}
		status := statuses[s.rng.Intn(len(statuses))]

		// 日付と矛盾しないように補正
		if status == model.PlantingStatusHarvested && expected.After(now) {
			status = model.PlantingStatusGrowing
		}
		if status == model.PlantingStatusGrowing && expected.Before(now) {
			status = model.PlantingStatusHarvested
		}
		if status == model.PlantingStatusPlanted && plantDate.Before(now.AddDate(0, 0, -3)) {
			status = model.PlantingStatusGrowing
		}

		p := model.TrayPlanting{
			VarietyID:           v.ID,
			PlantDate:           plantDate,
			ExpectedHarvestDate: expected,
			Status:              status,
			TrayCount:           1 + s.rng.Intn(5),
		}
		id, err := s.plantings.Create(ctx, p)
		if err != nil {
			return nil, err
		}
		p.ID = id
		out = append(out, p)
	}
	return out, nil
}

func (s *Seeder) seedHarvests(ctx context.Context, now time.Time, varieties []model.CropVariety, plantings []model.TrayPlanting) ([]model.Harvest, error) {
	varietyByID := map[int64]model.CropVariety{}
	for _, v := range varieties {
		varietyByID[v.ID] = v
	}

	out := []model.Harvest{}
	for _, p := range plantings {
		if p.Status != model.PlantingStatusHarvested {
			continue
		}
		v, ok := varietyByID[p.VarietyID]
		if !ok {
			continue
		}
		expectedYield := v.ExpectedYieldPerTray * float64(p.TrayCount)
		actual := expectedYield * (0.75 + s.rng.Float64()*0.35)

		h := model.Harvest{
			PlantingID:   p.ID,
			HarvestDate:  p.ExpectedHarvestDate.Add(time.Duration(s.rng.Intn(25)-12) * time.Hour),
			ActualYield:  float64(int(actual*100)) / 100,
			QualityScore: 6 + s.rng.Intn(5),
		}
		id, err := s.harvests.Create(ctx, h)
		if err != nil {
			return nil, err
		}
		h.ID = id
		out = append(out, h)
	}
	return out, nil
}

func (s *Seeder) seedBatches(ctx context.Context, varieties []model.CropVariety, plantings []model.TrayPlanting, harvests []model.Harvest) ([]model.InventoryBatch, error) {
	varietyByID := map[int64]model.CropVariety{}
	for _, v := range varieties {
		varietyByID[v.ID] = v
	}
	plantingByID := map[int64]model.TrayPlanting{}
	for _, p := range plantings {
		plantingByID[p.ID] = p
	}

	out := []model.InventoryBatch{}
	for _, h := range harvests {
		p, ok := plantingByID[h.PlantingID]
		if !ok {
			continue
		}
		v, ok := varietyByID[p.VarietyID]
		if !ok {
			continue
		}

		weight := float64(int(h.ActualYield/10)) / 100 // kg換算
		b := model.InventoryBatch{
			ID:          s.idGen.NewID(),
			Variety:     v.Name,
			TrayCount:   p.TrayCount,
			HarvestDate: h.HarvestDate,
			WeightKg:    &weight,
			Status:      model.BatchStatusInStorage,
		}
		if err := s.batches.Create(ctx, b); err != nil {
			return nil, err
		}
		if err := s.logs.Append(ctx, model.AdjustmentLog{
			ID:        s.idGen.NewID(),
			BatchID:   b.ID,
			Delta:     b.TrayCount,
			Reason:    "Initial harvest",
			Timestamp: h.HarvestDate,
			Actor:     "system",
		}); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *Seeder) seedOrders(ctx context.Context, now time.Time, batches []model.InventoryBatch) error {
	for i := 1; i < 35; i++ {
		orderID := s.idGen.NewID()
		orderDate := now.AddDate(0, 0, -s.rng.Intn(61))
		pickupDate := orderDate.AddDate(0, 0, 2+s.rng.Intn(6))

		statuses := []model.OrderStatus{
			model.OrderStatusPending,
			model.OrderStatusConfirmed,
			model.OrderStatusConfirmed,
			model.OrderStatusCompleted,
			model.OrderStatusCompleted,
			model.OrderStatusCompleted,
			model.OrderStatusCancelled,
		}
		status := statuses[s.rng.Intn(len(statuses))]
		if status == model.OrderStatusCompleted && pickupDate.After(now) {
			status = model.OrderStatusConfirmed
		}

		items := []model.OrderItem{}
		total := 0.0
		lineCount := 1 + s.rng.Intn(3)
		for j := 0; j < lineCount; j++ {
			b, ok := s.pickBatch(ctx, batches, orderDate)
			if !ok {
				break
			}
			qty := 1 + s.rng.Intn(b.TrayCount)
			price := float64(int((8+s.rng.Float64()*4)*100)) / 100

			// キャンセル済み以外は在庫を実際に引き、対応するログを残す。
			if status != model.OrderStatusCancelled {
				if err := s.batches.SetTrayCount(ctx, b.ID, b.TrayCount-qty); err != nil {
					return err
				}
				if err := s.logs.Append(ctx, model.AdjustmentLog{
					ID:        s.idGen.NewID(),
					BatchID:   b.ID,
					Delta:     -qty,
					Reason:    fmt.Sprintf("Order %s (%s)", orderID, status),
					Timestamp: orderDate,
					Actor:     "system",
				}); err != nil {
					return err
				}
			}

			items = append(items, model.OrderItem{
				ID:           s.idGen.NewID(),
				OrderID:      orderID,
				BatchID:      b.ID,
				Variety:      b.Variety,
				Quantity:     qty,
				PricePerTray: price,
			})
			total += float64(qty) * price
		}
		if len(items) == 0 {
			continue
		}

		order := model.Order{
			ID:              orderID,
			CustomerName:    fmt.Sprintf("Customer %d", i),
			CustomerContact: fmt.Sprintf("cust%d@email.com", i),
			OrderDate:       orderDate,
			PickupDate:      pickupDate,
			Status:          status,
			Items:           items,
			TotalPrice:      float64(int(total*100)) / 100,
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}
	}
	return nil
}

// 注文日より前に収穫済みで在庫が残っているバッチを選ぶ。
func (s *Seeder) pickBatch(ctx context.Context, batches []model.InventoryBatch, orderDate time.Time) (model.InventoryBatch, bool) {
	candidates := []model.InventoryBatch{}
	for _, b := range batches {
		current, err := s.batches.FindByID(ctx, b.ID)
		if err != nil {
			continue
		}
		if current.Status == model.BatchStatusInStorage && current.TrayCount > 0 && current.HarvestDate.Before(orderDate) {
			candidates = append(candidates, current)
		}
	}
	if len(candidates) == 0 {
		return model.InventoryBatch{}, false
	}
	return candidates[s.rng.Intn(len(candidates))], true
}
