// Package forecast は需要予測オラクルのローカル実装。
// 履歴系列に最小二乗の直線を当てて先の日次需要を外挿する。
package forecast

import (
	"context"
	"errors"
	"math"

	"portal/internal/domain/model"
)

var errNotEnoughHistory = errors.New("need at least two observations")

type LinearOracle struct{}

func NewLinearOracle() *LinearOracle {
	return &LinearOracle{}
}

// Predict は最後の観測日の翌日からhorizonDays日分の点予測を返す。
func (o *LinearOracle) Predict(ctx context.Context, history []model.SalesRecord, horizonDays int) ([]model.ForecastPoint, error) {
	if len(history) < 2 {
		return nil, errNotEnoughHistory
	}
	if horizonDays < 1 {
		return nil, errors.New("horizon must be positive")
	}

	// x = 先頭からの経過日数, y = 販売トレイ数
	origin := history[0].Date
	n := float64(len(history))
	var sumX, sumY, sumXY, sumXX float64
	for _, rec := range history {
		x := rec.Date.Sub(origin).Hours() / 24
		y := float64(rec.TotalTraysSold)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil, errors.New("degenerate history series")
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	last := history[len(history)-1].Date
	out := make([]model.ForecastPoint, 0, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		day := last.AddDate(0, 0, i)
		x := day.Sub(origin).Hours() / 24
		predicted := intercept + slope*x
		if predicted < 0 {
			predicted = 0
		}
		out = append(out, model.ForecastPoint{
			Date:           day,
			PredictedTrays: math.Round(predicted*10) / 10,
		})
	}
	return out, nil
}
