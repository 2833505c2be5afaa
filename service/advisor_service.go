package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"credit-advisor/domain"
	"credit-advisor/inference"
	"credit-advisor/observability"
	"credit-advisor/repository"
)

// EvaluationResult combina la respuesta del motor con la recomendación.
type EvaluationResult struct {
	Evaluation inference.EvaluationResponse `json:"evaluation"`
	Advice     domain.Advice                `json:"advice"`
	Cached     bool                         `json:"cached"`
}

type AdvisorService struct {
	engine   inference.Engine
	cache    repository.CacheRepository
	history  repository.AdviceRepository
	metrics  *observability.Metrics
	logger   *slog.Logger
	cacheTTL time.Duration
}

// NewAdvisorService crea el servicio. metrics puede ser nil.
func NewAdvisorService(
	engine inference.Engine,
	cache repository.CacheRepository,
	history repository.AdviceRepository,
	metrics *observability.Metrics,
	logger *slog.Logger,
	cacheTTL time.Duration,
) *AdvisorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdvisorService{
		engine:   engine,
		cache:    cache,
		history:  history,
		metrics:  metrics,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Advise calcula la recomendación sin consultar el motor y la guarda en el
// historial cuando trae session_id.
func (s *AdvisorService) Advise(req AdviceRequest) domain.Advice {
	advice := Advise(req)
	s.observe(advice)
	if req.SessionID != "" {
		s.save(req.SessionID, advice)
	}
	return advice
}

// Evaluate consulta el motor (o la caché) con el registro del solicitante y
// arma la recomendación con los hechos detectados.
func (s *AdvisorService) Evaluate(
	ctx context.Context,
	input domain.AppInputData,
	sessionID string,
) (EvaluationResult, error) {

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if invalid := ValidateInput(input); len(invalid) > 0 {
		// El motor reporta sus propias fallas; solo se deja rastro.
		s.logger.Debug("input outside form bounds", "session_id", sessionID, "fields", len(invalid))
	}

	req := inference.NewEvaluationRequest(input, sessionID)
	key, err := cacheKey(req)
	if err != nil {
		return EvaluationResult{}, err
	}

	resp, cached := s.lookup(ctx, key)
	if !cached {
		start := time.Now()
		resp, err = s.engine.Evaluate(ctx, req)
		s.metrics.ObserveInference("evaluate", time.Since(start), err)
		if err != nil {
			s.logger.Error("inference engine evaluation failed", "session_id", sessionID, "error", err)
			return EvaluationResult{}, errors.Wrap(err, "inference engine unavailable")
		}
		s.store(ctx, key, resp)
	}
	resp.SessionID = sessionID
	s.metrics.ObserveEvaluation(resp.FinalDecision)

	for _, code := range resp.FailuresDetected {
		if !KnownFailureCode(code) {
			s.logger.Warn("unknown failure code from inference engine", "session_id", sessionID, "code", code)
		}
	}

	advice := Advise(AdviceRequest{
		SessionID:        sessionID,
		FactsDetected:    resp.FactsDetected,
		Input:            input,
		RiskProfile:      resp.RiskProfile,
		FailuresDetected: resp.FailuresDetected,
	})
	s.observe(advice)
	s.save(sessionID, advice)

	s.logger.Info("evaluation completed",
		"session_id", sessionID,
		"decision", resp.FinalDecision,
		"risk_profile", resp.RiskProfile,
		"products", len(advice.Products),
		"failures", len(advice.Failures),
		"cached", cached,
	)

	return EvaluationResult{Evaluation: resp, Advice: advice, Cached: cached}, nil
}

// History devuelve una página del historial de evaluaciones del motor.
func (s *AdvisorService) History(ctx context.Context, limit, offset int) (inference.EvaluationsPage, error) {
	start := time.Now()
	page, err := s.engine.ListEvaluations(ctx, limit, offset)
	s.metrics.ObserveInference("list_evaluations", time.Since(start), err)
	if err != nil {
		return inference.EvaluationsPage{}, errors.Wrap(err, "inference engine unavailable")
	}
	return page, nil
}

// FindAdvice devuelve una recomendación calculada previamente.
func (s *AdvisorService) FindAdvice(sessionID string) (domain.Advice, bool) {
	if s.history == nil {
		return domain.Advice{}, false
	}
	return s.history.Find(sessionID)
}

func (s *AdvisorService) lookup(ctx context.Context, key string) (inference.EvaluationResponse, bool) {
	if s.cache == nil {
		return inference.EvaluationResponse{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	s.metrics.ObserveCache(ok)
	if !ok {
		return inference.EvaluationResponse{}, false
	}
	var resp inference.EvaluationResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		s.logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		return inference.EvaluationResponse{}, false
	}
	return resp, true
}

func (s *AdvisorService) store(ctx context.Context, key string, resp inference.EvaluationResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("failed to encode evaluation for cache", "error", err)
		return
	}
	// No crítico si falla
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache evaluation", "key", key, "error", err)
	}
}

func (s *AdvisorService) save(sessionID string, advice domain.Advice) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(sessionID, advice); err != nil {
		s.logger.Warn("failed to save advice", "session_id", sessionID, "error", err)
	}
}

func (s *AdvisorService) observe(advice domain.Advice) {
	ids := make([]string, 0, len(advice.Products))
	for _, p := range advice.Products {
		ids = append(ids, p.ID)
	}
	s.metrics.ObserveRecommendations(ids)
}

// cacheKey identifica la solicitud sin su session_id, de modo que dos
// sesiones con el mismo registro comparten la respuesta del motor.
func cacheKey(req inference.EvaluationRequest) (string, error) {
	req.SessionID = ""
	raw, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode cache key")
	}
	return fmt.Sprintf("eval:%016x", xxhash.Sum64(raw)), nil
}
