package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"planai/internal/modules/itinerary"
)

const busanRequest = `{
  "destination": "Busan",
  "duration_days": 2,
  "party_size": 2,
  "budget_krw": 500000,
  "accommodation": {"address_name": "X", "latitude": 35.1, "longitude": 129.1},
  "transportation": {"main_mode": "public_transport", "preferences": []},
  "style": {"pace": "relaxed", "atmosphere": "quiet", "walking": "like", "interests": ["food"], "food_restrictions": []}
}`

func apiBaseURL(t *testing.T) string {
	t.Helper()
	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("PLANAI_API_BASE_URL")), "/")
	if baseURL == "" {
		t.Skip("PLANAI_API_BASE_URL not set; skipping integration test")
	}
	return baseURL
}

func TestPlanEndpointRejectsInvalidRequest(t *testing.T) {
	baseURL := apiBaseURL(t)
	client := &http.Client{Timeout: 10 * time.Second}
	waitForAPIReady(t, client, baseURL)

	body := strings.Replace(busanRequest, "public_transport", "bicycle", 1)
	status, raw := callPlan(t, client, baseURL, body)
	if status != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d, body=%s", http.StatusBadRequest, status, string(raw))
	}

	var errResp struct {
		Error  string                `json:"error"`
		Fields []itinerary.Violation `json:"fields"`
	}
	if err := json.Unmarshal(raw, &errResp); err != nil {
		t.Fatalf("unmarshal error response: %v, raw=%s", err, string(raw))
	}
	if len(errResp.Fields) != 1 || errResp.Fields[0].Field != "transportation.main_mode" {
		t.Fatalf("expected a single main_mode violation, got %+v", errResp.Fields)
	}
}

func TestPlanEndpointGeneratesItinerary(t *testing.T) {
	baseURL := apiBaseURL(t)
	client := &http.Client{Timeout: 120 * time.Second}
	waitForAPIReady(t, client, baseURL)

	status, raw := callPlan(t, client, baseURL, busanRequest)
	if status != http.StatusOK {
		t.Fatalf("expected %d, got %d, body=%s", http.StatusOK, status, string(raw))
	}

	// Re-validate the body with the same rules the server applied to the model output.
	resp, err := itinerary.ValidateResponse(raw)
	if err != nil {
		t.Fatalf("response does not satisfy the itinerary schema: %v", err)
	}
	if strings.TrimSpace(resp.TripTitle) == "" {
		t.Fatalf("expected a trip title, raw=%s", string(raw))
	}
	t.Logf("[TEST LOG] %q: %d day(s)", resp.TripTitle, len(resp.Plan))

	dsn := strings.TrimSpace(os.Getenv("PLANAI_TEST_DSN"))
	if dsn == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(ctx,
		"SELECT COUNT(*) FROM generation_log WHERE outcome IN ('success', 'cached') AND created_at > now() - interval '5 minutes'",
	).Scan(&n); err != nil {
		t.Fatalf("query generation_log: %v", err)
	}
	if n == 0 {
		t.Fatalf("expected a generation_log row for the successful plan")
	}
}

func callPlan(t *testing.T, client *http.Client, baseURL, body string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/plan", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("call /api/v1/plan: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, raw
}

func waitForAPIReady(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		req, err := http.NewRequest(http.MethodGet, baseURL+"/health", nil)
		if err == nil {
			resp, err := client.Do(req)
			if err == nil {
				_ = resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return
				}
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("api not ready: GET %s/health did not return 200 in time", baseURL)
}
