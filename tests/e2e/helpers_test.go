package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portal/internal/forecast"
	"portal/internal/handler"
	"portal/internal/infra/memstore"
	"portal/internal/server"
	"portal/internal/usecase"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string { return uuid.NewString() }

type realClock struct{}

func (c *realClock) Now() time.Time { return time.Now() }

type noopSink struct{}

func (noopSink) Notify(ctx context.Context, subject string, body string) error { return nil }

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewTestClient はインメモリストアで一式を組み立てたサーバごと返す。
// テスト間で状態は共有しない。
func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	logger := zap.NewNop()
	batches := memstore.NewBatchStore()
	logs := memstore.NewAdjustmentLogStore()
	orders := memstore.NewOrderStore()
	varieties := memstore.NewVarietyStore()
	plantings := memstore.NewPlantingStore()
	harvests := memstore.NewHarvestStore()
	notifications := memstore.NewNotificationStore()

	idGen := &uuidGenerator{}
	clock := &realClock{}
	sink := noopSink{}

	ledgerUC := usecase.NewLedgerUsecase(batches, logs, notifications, sink, 5, idGen, clock, logger)
	orderUC := usecase.NewOrderUsecase(orders, ledgerUC, idGen, clock, logger)
	forecastUC := usecase.NewForecastUsecase(orders, forecast.NewLinearOracle(), idGen, clock, logger)
	farmUC := usecase.NewFarmUsecase(varieties, plantings, harvests, clock, logger)
	dashboardUC := usecase.NewDashboardUsecase(varieties, plantings, harvests, batches, orders, clock)
	notificationUC := usecase.NewNotificationUsecase(notifications, sink, idGen, clock, logger)

	e := server.New("", server.Handlers{
		Inventory:    handler.NewInventoryHandler(ledgerUC),
		Order:        handler.NewOrderHandler(orderUC),
		Forecast:     handler.NewForecastHandler(forecastUC),
		Dashboard:    handler.NewDashboardHandler(dashboardUC),
		Farm:         handler.NewFarmHandler(farmUC),
		Notification: handler.NewNotificationHandler(notificationUC),
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return &TestClient{
		BaseURL: strings.TrimRight(srv.URL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Batch struct {
	ID          string   `json:"id"`
	Variety     string   `json:"variety"`
	TrayCount   int      `json:"trayCount"`
	HarvestDate string   `json:"harvestDate"`
	WeightKg    *float64 `json:"weightKg,omitempty"`
	Status      string   `json:"status"`
}

type AdjustmentLog struct {
	ID        string `json:"id"`
	BatchID   string `json:"batchId"`
	Change    int    `json:"change"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"userId"`
}

type AdjustmentResponse struct {
	BatchID  string `json:"batchId"`
	Change   int    `json:"change"`
	Reason   string `json:"reason"`
	NewCount int    `json:"newCount"`
}

type OrderItem struct {
	ID              string  `json:"id"`
	InventoryItemID string  `json:"inventoryItemId"`
	Variety         string  `json:"variety"`
	Quantity        int     `json:"quantity"`
	PricePerTray    float64 `json:"price_per_tray"`
}

type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	Status       string      `json:"status"`
	Items        []OrderItem `json:"items"`
	TotalPrice   float64     `json:"total_price"`
}

type ForecastPoint struct {
	Date           string  `json:"date"`
	PredictedTrays float64 `json:"predictedTrays"`
}

type Forecast struct {
	ID          string          `json:"id"`
	PeriodStart string          `json:"periodStart"`
	PeriodEnd   string          `json:"periodEnd"`
	Predictions []ForecastPoint `json:"predictions"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if bodyBytes != nil {
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		t.Fatalf("http.NewRequestWithContext failed: %v", err)
	}
	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll failed: %v", err)
	}
	return resp, respBody
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	return b
}

func mustUnmarshal[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal failed: %v body=%s", err, string(body))
	}
	return v
}

// createBatch は在庫バッチを1つ作って返す。
func (c *TestClient) createBatch(ctx context.Context, t *testing.T, variety string, trays int) Batch {
	t.Helper()

	body := mustMarshal(t, map[string]any{
		"variety":     variety,
		"trayCount":   trays,
		"harvestDate": time.Now().UTC().Format(time.RFC3339),
		"status":      "in-storage",
	})
	resp, respBody := c.doJSON(ctx, t, http.MethodPost, "/inventory", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /inventory status=%d body=%s", resp.StatusCode, string(respBody))
	}
	return mustUnmarshal[Batch](t, respBody)
}

func (c *TestClient) getBatch(ctx context.Context, t *testing.T, id string) Batch {
	t.Helper()

	resp, respBody := c.doJSON(ctx, t, http.MethodGet, "/inventory/"+id, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /inventory/%s status=%d body=%s", id, resp.StatusCode, string(respBody))
	}
	return mustUnmarshal[Batch](t, respBody)
}
