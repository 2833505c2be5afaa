package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"credit-advisor/domain"
	"credit-advisor/service"
)

const (
	maxBodyBytes        = 1 << 20
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type CreditHandler struct {
	service *service.AdvisorService
	logger  *slog.Logger
}

func NewCreditHandler(service *service.AdvisorService, logger *slog.Logger) *CreditHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreditHandler{service: service, logger: logger}
}

type validateResponse struct {
	Valid  bool                      `json:"valid"`
	Errors map[domain.FieldID]string `json:"errors"`
}

type explainRequest struct {
	Codes []string `json:"codes"`
}

type evaluateRequest struct {
	domain.AppInputData
	SessionID string `json:"session_id,omitempty"`
}

// Validate valida todos los campos con límites del registro.
func (h *CreditHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if !h.requireJSONPost(w, r) {
		return
	}

	var input domain.AppInputData
	if !h.decode(w, r, &input) {
		return
	}

	errs := service.ValidateInput(input)
	h.writeJSON(w, http.StatusOK, validateResponse{Valid: len(errs) == 0, Errors: errs})
}

// Recommend arma la recomendación a partir de una salida del motor ya
// obtenida por el cliente.
func (h *CreditHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !h.requireJSONPost(w, r) {
		return
	}

	var req service.AdviceRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.Advise(req))
}

// Explain traduce una lista de códigos de falla.
func (h *CreditHandler) Explain(w http.ResponseWriter, r *http.Request) {
	if !h.requireJSONPost(w, r) {
		return
	}

	var req explainRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.writeJSON(w, http.StatusOK, service.ExplainAll(req.Codes))
}

// Evaluate envía el registro al motor y devuelve la evaluación junto con la
// recomendación.
func (h *CreditHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if !h.requireJSONPost(w, r) {
		return
	}

	var req evaluateRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.Evaluate(r.Context(), req.AppInputData, req.SessionID)
	if err != nil {
		h.logger.Error("evaluation failed", "error", err)
		http.Error(w, "el motor de inferencia no está disponible", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// Advice devuelve una recomendación calculada antes para la sesión.
func (h *CreditHandler) Advice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.PathValue("sessionID")
	advice, ok := h.service.FindAdvice(sessionID)
	if !ok {
		http.Error(w, "sesión no encontrada", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, advice)
}

// Evaluations devuelve una página del historial del motor.
func (h *CreditHandler) Evaluations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, ok := queryInt(r, "limit", defaultHistoryLimit)
	if !ok || limit <= 0 || limit > maxHistoryLimit {
		http.Error(w, "limit inválido", http.StatusBadRequest)
		return
	}
	offset, ok := queryInt(r, "offset", 0)
	if !ok || offset < 0 {
		http.Error(w, "offset inválido", http.StatusBadRequest)
		return
	}

	page, err := h.service.History(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("history lookup failed", "error", err)
		http.Error(w, "el motor de inferencia no está disponible", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, page)
}

func (h *CreditHandler) requireJSONPost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	// Validar Content-Type
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}
	return true
}

func (h *CreditHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.Debug("error decoding request body", "path", r.URL.Path, "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON codifica primero en un buffer para no escribir el header si falla.
func (h *CreditHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error("error encoding response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("error writing response", "error", err)
	}
}

func queryInt(r *http.Request, key string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
