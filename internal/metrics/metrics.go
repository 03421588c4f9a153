package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AdjustmentsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_inventory_adjustments_total",
		Help: "Number of inventory adjustments applied to the ledger.",
	})

	AdjustmentsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_inventory_adjustments_rejected_total",
		Help: "Number of adjustments rejected because they would drive a tray count negative.",
	})

	LowStockAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_low_stock_alerts_total",
		Help: "Number of low stock alerts emitted by the ledger.",
	})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_orders_placed_total",
		Help: "Number of orders accepted by the transaction engine.",
	})

	OrdersRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_orders_rejected_total",
		Help: "Number of orders rejected and rolled back.",
	})

	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_orders_cancelled_total",
		Help: "Number of orders cancelled.",
	})

	// キャンセル/却下時の戻し調整に失敗した回数。台帳の不整合が疑われる兆候。
	ReversalFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_order_reversal_failures_total",
		Help: "Number of best-effort inventory reversals that failed.",
	})

	ForecastCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_forecast_cache_hits_total",
		Help: "Number of forecast requests served from the cache.",
	})

	ForecastCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_forecast_cache_misses_total",
		Help: "Number of forecast requests that required computation.",
	})
)
