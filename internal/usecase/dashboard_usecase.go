package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"portal/internal/domain/model"
	repo "portal/internal/repository"
)

// DashboardUsecase は台帳・注文・栽培のスナップショットを読むだけのKPI集計。
// 何も書き込まない。
type DashboardUsecase struct {
	varieties repo.VarietyRepository
	plantings repo.PlantingRepository
	harvests  repo.HarvestRepository
	batches   repo.BatchRepository
	orders    repo.OrderRepository
	clock     Clock
}

func NewDashboardUsecase(
	varieties repo.VarietyRepository,
	plantings repo.PlantingRepository,
	harvests repo.HarvestRepository,
	batches repo.BatchRepository,
	orders repo.OrderRepository,
	clock Clock,
) *DashboardUsecase {
	return &DashboardUsecase{
		varieties: varieties,
		plantings: plantings,
		harvests:  harvests,
		batches:   batches,
		orders:    orders,
		clock:     clock,
	}
}

type DashboardKPIs struct {
	ActiveTrays        int     `json:"active_trays"`
	StorageTrays       int     `json:"storage_trays"`
	AvgYieldPerTray    float64 `json:"avg_yield_per_tray"`
	RecentRevenue      float64 `json:"recent_revenue"`
	HarvestsLast30Days int     `json:"harvests_last_30_days"`
	OrdersLast30Days   int     `json:"orders_last_30_days"`
}

type VarietyPerformance struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	YieldPerTray         float64 `json:"yield_per_tray"`
	ExpectedYieldPerTray float64 `json:"expected_yield_per_tray"`
	Performance          float64 `json:"performance"`
}

type UpcomingHarvest struct {
	ID                  int64     `json:"id"`
	Variety             string    `json:"variety"`
	ExpectedHarvestDate time.Time `json:"expected_harvest_date"`
	TrayCount           int       `json:"tray_count"`
	ExpectedYield       float64   `json:"expected_yield"`
}

type VarietyDemand struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	DailyDemand   float64 `json:"daily_demand"`
	WeeklyDemand  float64 `json:"weekly_demand"`
	MonthlyDemand float64 `json:"monthly_demand"`
}

type DashboardData struct {
	KPIs             DashboardKPIs        `json:"kpis"`
	TopVarieties     []VarietyPerformance `json:"top_varieties"`
	UpcomingHarvests []UpcomingHarvest    `json:"upcoming_harvests"`
	DemandForecast   []VarietyDemand      `json:"demand_forecast"`
}

func (u *DashboardUsecase) Data(ctx context.Context) (DashboardData, error) {
	now := u.clock.Now()

	varieties, err := u.varieties.List(ctx)
	if err != nil {
		return DashboardData{}, err
	}
	plantings, err := u.plantings.List(ctx)
	if err != nil {
		return DashboardData{}, err
	}
	harvests, err := u.harvests.List(ctx)
	if err != nil {
		return DashboardData{}, err
	}
	batches, err := u.batches.List(ctx, repo.BatchListFilter{})
	if err != nil {
		return DashboardData{}, err
	}
	orders, err := u.orders.List(ctx, repo.OrderListFilter{})
	if err != nil {
		return DashboardData{}, err
	}

	varietyByID := map[int64]model.CropVariety{}
	varietyByName := map[string]model.CropVariety{}
	for _, v := range varieties {
		varietyByID[v.ID] = v
		varietyByName[v.Name] = v
	}
	plantingByID := map[int64]model.TrayPlanting{}
	for _, p := range plantings {
		plantingByID[p.ID] = p
	}

	kpis := DashboardKPIs{}

	// 育成中のトレイ数
	for _, p := range plantings {
		if p.Status == model.PlantingStatusPlanted || p.Status == model.PlantingStatusGrowing {
			kpis.ActiveTrays += p.TrayCount
		}
	}

	// 保管中のトレイ数
	for _, b := range batches {
		if b.Status == model.BatchStatusInStorage {
			kpis.StorageTrays += b.TrayCount
		}
	}

	// トレイあたり平均収量
	totalYield := 0.0
	harvestedTrays := 0
	harvestedPlantings := map[int64]bool{}
	for _, h := range harvests {
		totalYield += h.ActualYield
		harvestedPlantings[h.PlantingID] = true
		if h.HarvestDate.After(now.AddDate(0, 0, -30)) {
			kpis.HarvestsLast30Days++
		}
	}
	for id := range harvestedPlantings {
		if p, ok := plantingByID[id]; ok {
			harvestedTrays += p.TrayCount
		}
	}
	if harvestedTrays > 0 {
		kpis.AvgYieldPerTray = round2(totalYield / float64(harvestedTrays))
	}

	// 直近30日の売上（キャンセルは除外）
	cutoff := now.AddDate(0, 0, -30)
	for _, o := range orders {
		if o.Status == model.OrderStatusCancelled || !o.OrderDate.After(cutoff) {
			continue
		}
		kpis.RecentRevenue += o.TotalPrice
		kpis.OrdersLast30Days++
	}
	kpis.RecentRevenue = round2(kpis.RecentRevenue)

	return DashboardData{
		KPIs:             kpis,
		TopVarieties:     u.topVarieties(varieties, plantings, harvests),
		UpcomingHarvests: upcomingHarvests(now, plantings, varietyByID),
		DemandForecast:   demandByVariety(now, orders, varietyByName),
	}, nil
}

// 期待収量に対する実績で品種を並べる。
func (u *DashboardUsecase) topVarieties(varieties []model.CropVariety, plantings []model.TrayPlanting, harvests []model.Harvest) []VarietyPerformance {
	type agg struct {
		totalYield float64
		trayCount  int
	}
	plantingByID := map[int64]model.TrayPlanting{}
	for _, p := range plantings {
		plantingByID[p.ID] = p
	}
	byVariety := map[int64]*agg{}
	for _, h := range harvests {
		p, ok := plantingByID[h.PlantingID]
		if !ok {
			continue
		}
		a := byVariety[p.VarietyID]
		if a == nil {
			a = &agg{}
			byVariety[p.VarietyID] = a
		}
		a.totalYield += h.ActualYield
		a.trayCount += p.TrayCount
	}

	out := []VarietyPerformance{}
	for _, v := range varieties {
		a, ok := byVariety[v.ID]
		if !ok || a.trayCount == 0 {
			continue
		}
		perTray := a.totalYield / float64(a.trayCount)
		perf := 0.0
		if v.ExpectedYieldPerTray > 0 {
			perf = round1(perTray / v.ExpectedYieldPerTray * 100)
		}
		out = append(out, VarietyPerformance{
			ID:                   v.ID,
			Name:                 v.Name,
			YieldPerTray:         round2(perTray),
			ExpectedYieldPerTray: v.ExpectedYieldPerTray,
			Performance:          perf,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YieldPerTray > out[j].YieldPerTray })
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func upcomingHarvests(now time.Time, plantings []model.TrayPlanting, varietyByID map[int64]model.CropVariety) []UpcomingHarvest {
	out := []UpcomingHarvest{}
	for _, p := range plantings {
		if p.Status != model.PlantingStatusGrowing || !p.ExpectedHarvestDate.After(now) {
			continue
		}
		v := varietyByID[p.VarietyID]
		out = append(out, UpcomingHarvest{
			ID:                  p.ID,
			Variety:             v.Name,
			ExpectedHarvestDate: p.ExpectedHarvestDate,
			TrayCount:           p.TrayCount,
			ExpectedYield:       float64(p.TrayCount) * v.ExpectedYieldPerTray,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpectedHarvestDate.Before(out[j].ExpectedHarvestDate) })
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// 直近60日の注文量から品種別の需要ペースを出す。キャンセルは除外。
func demandByVariety(now time.Time, orders []model.Order, varietyByName map[string]model.CropVariety) []VarietyDemand {
	cutoff := now.AddDate(0, 0, -60)
	totals := map[int64]int{}
	for _, o := range orders {
		if o.Status == model.OrderStatusCancelled || !o.OrderDate.After(cutoff) {
			continue
		}
		for _, it := range o.Items {
			v, ok := varietyByName[it.Variety]
			if !ok {
				continue
			}
			totals[v.ID] += it.Quantity
		}
	}

	out := []VarietyDemand{}
	for _, v := range varietyByName {
		total, ok := totals[v.ID]
		if !ok {
			continue
		}
		daily := float64(total) / 60
		out = append(out, VarietyDemand{
			ID:            v.ID,
			Name:          v.Name,
			DailyDemand:   round2(daily),
			WeeklyDemand:  round2(daily * 7),
			MonthlyDemand: round2(daily * 30),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MonthlyDemand > out[j].MonthlyDemand })
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
