package usecase

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"portal/internal/domain/model"
	"portal/internal/metrics"
	repo "portal/internal/repository"
)

// 需要履歴を遡る日数。
const historyLookbackDays = 60

// ForecastUsecase はoracleの結果を(当日, horizon週)キーでメモ化する。
// oracleの失敗・履歴不足・空の予測はすべて同じ扱いで、履歴の平均値を
// 期間いっぱいに敷き詰める決定的なフォールバックに落ちる。
// キャッシュに有効期限はない。日付がキーに入るため翌日は自然に別キーになる。
type ForecastUsecase struct {
	orders repo.OrderRepository
	oracle Oracle
	idGen  IDGenerator
	clock  Clock
	log    *zap.Logger

	mu    sync.Mutex
	cache map[string]model.Forecast
}

func NewForecastUsecase(orders repo.OrderRepository, oracle Oracle, idGen IDGenerator, clock Clock, log *zap.Logger) *ForecastUsecase {
	return &ForecastUsecase{
		orders: orders,
		oracle: oracle,
		idGen:  idGen,
		clock:  clock,
		log:    log,
		cache:  map[string]model.Forecast{},
	}
}

func (u *ForecastUsecase) GetForecast(ctx context.Context, weeks int) (model.Forecast, error) {
	if weeks < 1 || weeks > 52 {
		return model.Forecast{}, NewHTTPError(http.StatusBadRequest, "weeks must be between 1 and 52")
	}

	now := u.clock.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, weeks*7)
	key := fmt.Sprintf("%s-%d", start.Format("2006-01-02"), weeks)

	u.mu.Lock()
	defer u.mu.Unlock()

	if cached, ok := u.cache[key]; ok {
		metrics.ForecastCacheHits.Inc()
		return cached, nil
	}
	metrics.ForecastCacheMisses.Inc()

	history, err := u.HistoricalSales(ctx, historyLookbackDays)
	if err != nil {
		return model.Forecast{}, err
	}

	var predictions []model.ForecastPoint
	if len(history) >= 2 {
		points, err := u.oracle.Predict(ctx, history, weeks*7)
		if err != nil {
			u.log.Warn("forecast oracle failed, falling back to historical mean", zap.Error(err))
		} else {
			// 要求された期間に限定する。
			for _, p := range points {
				if !p.Date.Before(start) && !p.Date.After(end) {
					predictions = append(predictions, p)
				}
			}
		}
	}

	// 履歴不足・oracle失敗・期間内の予測が空、はすべてフォールバック。
	if len(predictions) == 0 {
		predictions = fallbackPredictions(start, weeks*7, history)
	}

	f := model.Forecast{
		ID:          u.idGen.NewID(),
		PeriodStart: start,
		PeriodEnd:   end,
		Predictions: predictions,
		CreatedAt:   now,
	}
	u.cache[key] = f
	return f, nil
}

// 履歴の日次平均を期間の全日に敷く。履歴ゼロなら0。
func fallbackPredictions(start time.Time, days int, history []model.SalesRecord) []model.ForecastPoint {
	mean := 0.0
	if len(history) > 0 {
		sum := 0
		for _, rec := range history {
			sum += rec.TotalTraysSold
		}
		mean = float64(sum) / float64(len(history))
	}
	mean = round1(mean)

	out := make([]model.ForecastPoint, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, model.ForecastPoint{
			Date:           start.AddDate(0, 0, i),
			PredictedTrays: mean,
		})
	}
	return out
}

// HistoricalSales はcompletedな注文のトレイ数を日別に合計して返す。
func (u *ForecastUsecase) HistoricalSales(ctx context.Context, days int) ([]model.SalesRecord, error) {
	if days < 1 {
		return nil, NewHTTPError(http.StatusBadRequest, "days must be positive")
	}

	end := u.clock.Now()
	from := end.AddDate(0, 0, -days)

	orders, err := u.orders.List(ctx, repo.OrderListFilter{
		Status: string(model.OrderStatusCompleted),
		From:   &from,
		To:     &end,
	})
	if err != nil {
		return nil, err
	}

	byDay := map[time.Time]int{}
	for _, o := range orders {
		day := time.Date(o.OrderDate.Year(), o.OrderDate.Month(), o.OrderDate.Day(), 0, 0, 0, 0, o.OrderDate.Location())
		for _, it := range o.Items {
			byDay[day] += it.Quantity
		}
	}

	records := make([]model.SalesRecord, 0, len(byDay))
	for day, total := range byDay {
		records = append(records, model.SalesRecord{Date: day, TotalTraysSold: total})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
