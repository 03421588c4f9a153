package usecase

import (
	"context"
	"time"

	"portal/internal/domain/model"
)

// usecaseに注入する部品

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

// NotificationSink は外部への通知（メールなど）。
// ベストエフォートで、失敗してもログに残すだけで呼び出し元へは伝播させない。
type NotificationSink interface {
	Notify(ctx context.Context, subject string, body string) error
}

// Oracle は外部の需要予測器。履歴系列と日数を受け取り日次の点予測を返す。
// エラーも空の結果も、呼び出し側（ForecastUsecase）は同じ「フォールバック」として扱う。
type Oracle interface {
	Predict(ctx context.Context, history []model.SalesRecord, horizonDays int) ([]model.ForecastPoint, error)
}
