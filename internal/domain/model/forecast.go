package model

import "time"

// 日次の実績販売数（completedな注文の合計）。
type SalesRecord struct {
	Date           time.Time `json:"date"`
	TotalTraysSold int       `json:"totalTraysSold"`
}

type ForecastPoint struct {
	Date           time.Time `json:"date"`
	PredictedTrays float64   `json:"predictedTrays"`
}

// 需要予測の結果。一度計算したら不変で、(periodStart, horizon週)をキーにキャッシュされる。
type Forecast struct {
	ID          string          `json:"id"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	Predictions []ForecastPoint `json:"predictions"`
	CreatedAt   time.Time       `json:"createdAt"`
}
