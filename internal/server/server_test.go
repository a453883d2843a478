package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/vehicle-decision/internal/engine"
	"github.com/iwvelando/vehicle-decision/internal/scenario"
	"github.com/iwvelando/vehicle-decision/pkg/testutil"
	"go.uber.org/zap"
)

const baselineBody = `{
  "vehiclePrice": 65000,
  "businessUse": "80",
  "paymentMethod": "finance",
  "loanTerm": 5,
  "interestRate": 7.5,
  "annualIncome": 180000,
  "annualExpenses": 120000,
  "cashReserves": 30000,
  "annualKm": 15000,
  "vehicleType": "sedan",
  "ownershipPeriod": 5,
  "entityType": "individual"
}`

func newTestHandler(cache ResultCache) http.Handler {
	return NewHandler(zap.NewNop(), DefaultConfig(), testutil.NewEngine(), cache, "1.2.3")
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	rr := post(t, newTestHandler(nil), "/api/analyze", baselineBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %s", ct)
	}

	var resp struct {
		Issues  []engine.ValidationIssue `json:"issues"`
		Result  engine.Result            `json:"result"`
		Display map[string]interface{}   `json:"display"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Issues == nil || len(resp.Issues) != 0 {
		t.Fatalf("expected an empty issues list, got %v", resp.Issues)
	}
	if resp.Result.Scores.Overall != 70 {
		t.Fatalf("expected overall 70, got %d", resp.Result.Scores.Overall)
	}
	if resp.Result.Verdict != engine.VerdictCaution {
		t.Fatalf("expected caution verdict, got %s", resp.Result.Verdict)
	}
	if !resp.Result.CalculatedAt.Equal(testutil.FixedTime) {
		t.Fatalf("expected injected timestamp, got %s", resp.Result.CalculatedAt)
	}
	if resp.Display["monthlyPayment"] != "1302" {
		t.Fatalf("expected display monthlyPayment 1302, got %v", resp.Display["monthlyPayment"])
	}
}

func TestHandleAnalyzeMalformedFieldsStillComputes(t *testing.T) {
	rr := post(t, newTestHandler(nil), "/api/analyze", `{"vehiclePrice": "abc", "businessUse": true}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Issues []engine.ValidationIssue `json:"issues"`
		Result *engine.Result           `json:"result"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !engine.HasErrors(resp.Issues) {
		t.Fatalf("expected validation errors, got %v", resp.Issues)
	}
	if resp.Result == nil {
		t.Fatal("expected a result alongside validation issues")
	}
}

func TestHandleValidate(t *testing.T) {
	h := newTestHandler(nil)

	rr := post(t, h, "/api/validate", `{}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp validateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Issues) == 0 {
		t.Fatal("expected issues for empty inputs")
	}

	rr = post(t, h, "/api/validate", baselineBody)
	if !strings.Contains(rr.Body.String(), `"issues":[]`) {
		t.Fatalf("expected an empty issues array, got %s", rr.Body.String())
	}
}

func TestHandleScenarios(t *testing.T) {
	rr := post(t, newTestHandler(nil), "/api/scenarios", baselineBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Scenarios []scenario.Result `json:"scenarios"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Scenarios) != 6 {
		t.Fatalf("expected 6 scenarios, got %d", len(resp.Scenarios))
	}
	if resp.Scenarios[0].ID != "current" || resp.Scenarios[0].Result.Scores.Overall != 70 {
		t.Fatalf("unexpected current scenario %+v", resp.Scenarios[0])
	}
}

func TestHandleBadRequests(t *testing.T) {
	h := newTestHandler(nil)

	rr := post(t, h, "/api/analyze", `{"vehiclePrice": `)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for truncated JSON, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp["error"], "failed to decode inputs") {
		t.Fatalf("unexpected error message %q", resp["error"])
	}

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/missing", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleBodyTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetBodySizeBytes(32)
	h := NewHandler(zap.NewNop(), cfg, nil, nil, "")

	rr := post(t, h, "/api/analyze", baselineBody)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleVersionAndHealth(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, "  ")

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"version":"dev"`) {
		t.Fatalf("unexpected version response %d %s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health response %d %s", rr.Code, rr.Body.String())
	}
}

func TestRequestID(t *testing.T) {
	h := newTestHandler(nil)

	rr := post(t, h, "/api/validate", baselineBody)
	generated := rr.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("expected a generated uuid request id, got %q", generated)
	}

	supplied := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(baselineBody))
	req.Header.Set(RequestIDHeader, supplied)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get(RequestIDHeader); got != supplied {
		t.Fatalf("expected supplied request id %s, got %s", supplied, got)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(baselineBody))
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get(RequestIDHeader); got == "not-a-uuid" {
		t.Fatal("expected malformed request ids to be replaced")
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORS.AllowedOrigins = []string{"https://forms.example.com"}
	h := NewHandler(zap.NewNop(), cfg, nil, nil, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "https://forms.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://forms.example.com" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow origin header for unknown origin, got %q", got)
	}
}

func TestAnalyzeUsesCache(t *testing.T) {
	cache := NewMemoryCache(time.Minute, 8)
	h := newTestHandler(cache)

	first := post(t, h, "/api/analyze", baselineBody)
	if first.Header().Get("X-Cache") != "miss" {
		t.Fatalf("expected first request to miss, got %q", first.Header().Get("X-Cache"))
	}

	compact := new(bytes.Buffer)
	if err := json.Compact(compact, []byte(baselineBody)); err != nil {
		t.Fatalf("failed to compact body: %v", err)
	}
	second := post(t, h, "/api/analyze", compact.String())
	if second.Header().Get("X-Cache") != "hit" {
		t.Fatalf("expected reformatted request to hit, got %q", second.Header().Get("X-Cache"))
	}
	if first.Body.String() != second.Body.String() {
		t.Fatal("cached response should match the computed response")
	}

	post(t, h, "/api/scenarios", baselineBody)
	if cache.Len() != 2 {
		t.Fatalf("expected analyze and scenarios to cache separately, got %d entries", cache.Len())
	}
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, context.DeadlineExceeded
}

func (failingCache) Set(context.Context, string, []byte) error {
	return context.DeadlineExceeded
}

func TestAnalyzeSurvivesCacheFailures(t *testing.T) {
	rr := post(t, newTestHandler(failingCache{}), "/api/analyze", baselineBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 despite cache failure, got %d", rr.Code)
	}
}
