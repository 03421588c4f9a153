package e2e

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestForecast_DefaultHorizonIsFourWeeks(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c := NewTestClient(t)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/forecast", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /forecast status=%d body=%s", resp.StatusCode, string(body))
	}
	f := mustUnmarshal[Forecast](t, body)
	if len(f.Predictions) != 28 {
		t.Fatalf("predictions len=%d, want 28", len(f.Predictions))
	}
	// 履歴のない新規環境は決定的に0を敷く。
	for _, p := range f.Predictions {
		if p.PredictedTrays != 0 {
			t.Fatalf("predictedTrays=%v, want 0", p.PredictedTrays)
		}
	}
}

func TestForecast_SameDayRequestsAreStable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c := NewTestClient(t)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/forecast?weeks=2", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	first := mustUnmarshal[Forecast](t, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/forecast?weeks=2", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	second := mustUnmarshal[Forecast](t, body)

	// キャッシュが効き、IDまで同一の結果が返る。
	if first.ID != second.ID {
		t.Fatalf("forecast ids differ: %s vs %s", first.ID, second.ID)
	}
}

func TestForecast_InvalidWeeks(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c := NewTestClient(t)

	for _, q := range []string{"0", "53", "abc"} {
		resp, _ := c.doJSON(ctx, t, http.MethodGet, "/forecast?weeks="+q, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("weeks=%s status=%d, want 400", q, resp.StatusCode)
		}
	}
}

func TestForecast_HistoricalSalesEmpty(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c := NewTestClient(t)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/historical-sales", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(body))
	}
	records := mustUnmarshal[[]map[string]any](t, body)
	if len(records) != 0 {
		t.Fatalf("records len=%d, want 0", len(records))
	}
}

func TestDashboard_ReturnsKPIs(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c := NewTestClient(t)

	c.createBatch(ctx, t, "Kale", 4)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/dashboard-data", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(body))
	}
	data := mustUnmarshal[map[string]any](t, body)
	if _, ok := data["kpis"]; !ok {
		t.Fatalf("missing kpis in %v", data)
	}
}

func TestNotifications_CreateListMarkRead(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c := NewTestClient(t)

	body := mustMarshal(t, map[string]string{"message": "first harvest logged", "type": "info"})
	resp, respBody := c.doJSON(ctx, t, http.MethodPost, "/notifications", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /notifications status=%d body=%s", resp.StatusCode, string(respBody))
	}
	created := mustUnmarshal[map[string]any](t, respBody)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("missing id in %v", created)
	}

	resp, respBody = c.doJSON(ctx, t, http.MethodPut, "/notifications/"+id+"/read", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT read status=%d body=%s", resp.StatusCode, string(respBody))
	}

	resp, respBody = c.doJSON(ctx, t, http.MethodGet, "/notifications?unread=true", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /notifications status=%d", resp.StatusCode)
	}
	unread := mustUnmarshal[[]map[string]any](t, respBody)
	if len(unread) != 0 {
		t.Fatalf("unread len=%d, want 0", len(unread))
	}
}
