package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-advisor/domain"
	"credit-advisor/inference"
	"credit-advisor/observability"
	"credit-advisor/repository"
	"credit-advisor/service"
)

type stubEngine struct {
	fail bool
}

func (s *stubEngine) Evaluate(_ context.Context, req inference.EvaluationRequest) (inference.EvaluationResponse, error) {
	if s.fail {
		return inference.EvaluationResponse{}, errors.New("engine down")
	}
	return inference.EvaluationResponse{
		SessionID:        req.SessionID,
		FinalDecision:    "APROBADO",
		RiskProfile:      "RIESGO_MEDIO",
		FactsDetected:    []string{string(domain.FactIngresosMin2SMMLV)},
		FailuresDetected: []string{service.FailureMultipleInquiries},
	}, nil
}

func (s *stubEngine) ListEvaluations(_ context.Context, limit, offset int) (inference.EvaluationsPage, error) {
	if s.fail {
		return inference.EvaluationsPage{}, errors.New("engine down")
	}
	return inference.EvaluationsPage{
		Evaluations: []inference.EvaluationSession{{ID: "e1", SessionID: "s1"}},
		Total:       limit + offset,
	}, nil
}

func newTestHandler(t *testing.T, engine inference.Engine) *CreditHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := repository.NewMemoryCache(100)
	t.Cleanup(cache.Stop)
	svc := service.NewAdvisorService(
		engine,
		cache,
		repository.NewAdviceRepositoryMemory(10),
		observability.NewMetrics(),
		logger,
		time.Minute,
	)
	return NewCreditHandler(svc, logger)
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestValidateHandler_OK(t *testing.T) {

	handler := newTestHandler(t, &stubEngine{})

	req := jsonRequest(http.MethodPost, "/credit/validate", `{
		"age": 17,
		"monthly_income": 1300000,
		"credit_score": 650
	}`)
	w := httptest.NewRecorder()

	handler.Validate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp validateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Valid)
	assert.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors, domain.FieldAge)
}

func TestValidateHandler_MethodNotAllowed(t *testing.T) {

	handler := newTestHandler(t, &stubEngine{})

	req := httptest.NewRequest(http.MethodGet, "/credit/validate", nil)
	w := httptest.NewRecorder()

	handler.Validate(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestValidateHandler_UnsupportedMediaType(t *testing.T) {

	handler := newTestHandler(t, &stubEngine{})

	req := httptest.NewRequest(http.MethodPost, "/credit/validate", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()

	handler.Validate(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}
}

func TestRecommendHandler_BadRequest(t *testing.T) {

	handler := newTestHandler(t, &stubEngine{})

	req := jsonRequest(http.MethodPost, "/credit/recommend", `{invalid-json}`)
	w := httptest.NewRecorder()

	handler.Recommend(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRecommendHandler_OK(t *testing.T) {

	handler := newTestHandler(t, &stubEngine{})

	req := jsonRequest(http.MethodPost, "/credit/recommend", `{
		"session_id": "s-rec",
		"facts_detected": ["FACT_FINALIDAD_VIVIENDA", "FACT_INGRESOS_MIN_4_SMMLV", "FACT_CUOTA_MAX_30_INGRESOS"],
		"input": {"monthly_income": 4000000},
		"risk_profile": "RIESGO_BAJO",
		"failures_detected": ["UNKNOWN_CODE"]
	}`)
	w := httptest.NewRecorder()

	handler.Recommend(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var advice domain.Advice
	require.NoError(t, json.NewDecoder(w.Body).Decode(&advice))
	require.Len(t, advice.Products, 1)
	assert.Equal(t, "credito-vivienda", advice.Products[0].ID)
	assert.Equal(t, 95, advice.Products[0].Eligibility)
	assert.Equal(t, 1.2, advice.Products[0].InterestRate)
	require.Len(t, advice.Failures, 1)
	assert.Equal(t, "Unknown Code", advice.Failures[0].Message)
}

func TestExplainHandler_OK(t *testing.T) {

	handler := newTestHandler(t, &stubEngine{})

	req := jsonRequest(http.MethodPost, "/credit/explain", `{"codes": ["FALLA_EDAD_FUERA_RANGO", "FALLA_MORA_RECIENTE"]}`)
	w := httptest.NewRecorder()

	handler.Explain(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out []domain.FailureExplanation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Contains(t, out[0].Message, "18 a 75 años")
}

func TestEvaluateHandler_OKAndAdviceLookup(t *testing.T) {

	handler := newTestHandler(t, &stubEngine{})

	req := jsonRequest(http.MethodPost, "/credit/evaluate", `{
		"session_id": "s-eval",
		"age": 30,
		"monthly_income": 3000000,
		"credit_score": 700,
		"employment_status": "empleado",
		"credit_purpose": "libre_inversion",
		"requested_amount": 5000000
	}`)
	w := httptest.NewRecorder()

	handler.Evaluate(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result service.EvaluationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, "s-eval", result.Evaluation.SessionID)
	assert.Equal(t, "MEDIO", result.Advice.RiskTier)
	require.Len(t, result.Advice.Products, 1)
	assert.Equal(t, "tarjeta-credito", result.Advice.Products[0].ID)

	get := httptest.NewRequest(http.MethodGet, "/credit/advice/s-eval", nil)
	get.SetPathValue("sessionID", "s-eval")
	w = httptest.NewRecorder()

	handler.Advice(w, get)

	require.Equal(t, http.StatusOK, w.Code)
	var advice domain.Advice
	require.NoError(t, json.NewDecoder(w.Body).Decode(&advice))
	assert.Equal(t, "s-eval", advice.SessionID)
}

func TestEvaluateHandler_EngineDown(t *testing.T) {

	handler := newTestHandler(t, &stubEngine{fail: true})

	req := jsonRequest(http.MethodPost, "/credit/evaluate", `{"age": 30}`)
	w := httptest.NewRecorder()

	handler.Evaluate(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestAdviceHandler_NotFound(t *testing.T) {

	handler := newTestHandler(t, &stubEngine{})

	req := httptest.NewRequest(http.MethodGet, "/credit/advice/nope", nil)
	req.SetPathValue("sessionID", "nope")
	w := httptest.NewRecorder()

	handler.Advice(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestEvaluationsHandler(t *testing.T) {

	handler := newTestHandler(t, &stubEngine{})

	tests := []struct {
		query  string
		status int
		total  int
	}{
		{"", http.StatusOK, 20},
		{"?limit=5&offset=10", http.StatusOK, 15},
		{"?limit=0", http.StatusBadRequest, 0},
		{"?limit=101", http.StatusBadRequest, 0},
		{"?limit=abc", http.StatusBadRequest, 0},
		{"?offset=-1", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/credit/evaluations"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.Evaluations(w, req)

			require.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}
			var page inference.EvaluationsPage
			require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
			assert.Equal(t, tt.total, page.Total)
		})
	}
}

func TestEvaluationsHandler_EngineDown(t *testing.T) {

	handler := newTestHandler(t, &stubEngine{fail: true})

	req := httptest.NewRequest(http.MethodGet, "/credit/evaluations", nil)
	w := httptest.NewRecorder()

	handler.Evaluations(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
