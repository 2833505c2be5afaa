// Package inference es el cliente tipado del motor de inferencia crediticia
// externo. El motor deriva los hechos, el perfil de riesgo y las fallas; este
// paquete solo transporta sus solicitudes y respuestas.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	evaluatePath    = "/inference-engine/evaluate"
	evaluationsPath = "/inference-engine/evaluations"

	maxErrorBody = 4 << 10
)

// Engine es la frontera con el motor de inferencia.
type Engine interface {
	Evaluate(ctx context.Context, req EvaluationRequest) (EvaluationResponse, error)
	ListEvaluations(ctx context.Context, limit, offset int) (EvaluationsPage, error)
}

// Config configura el cliente del motor.
type Config struct {
	// BaseURL es la raíz del servicio, sin la ruta /inference-engine.
	BaseURL string
	// Timeout aplica a cada intento HTTP.
	Timeout time.Duration
	// MaxRetries es el número de reintentos ante errores transitorios.
	MaxRetries int
	// RetryBackoff es la espera inicial entre reintentos; crece exponencialmente.
	RetryBackoff time.Duration
}

// StatusError representa una respuesta no exitosa del motor.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference engine error (status %d): %s", e.Code, e.Body)
}

// Temporary indica si vale la pena reintentar.
func (e *StatusError) Temporary() bool {
	return e.Code >= http.StatusInternalServerError || e.Code == http.StatusTooManyRequests
}

// Client llama al motor por HTTP con reintentos.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient crea un cliente. Si httpClient es nil se usa uno con el timeout
// configurado.
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("inference engine base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, errors.Wrapf(err, "invalid inference engine URL %q", cfg.BaseURL)
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 200 * time.Millisecond
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		cfg:        cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Evaluate envía el registro al motor. Si la solicitud no trae session_id se
// genera uno nuevo.
func (c *Client) Evaluate(ctx context.Context, req EvaluationRequest) (EvaluationResponse, error) {
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return EvaluationResponse{}, errors.Wrap(err, "failed to encode evaluation request")
	}

	var resp EvaluationResponse
	err = c.do(ctx, http.MethodPost, c.baseURL+evaluatePath, body, &resp)
	if err != nil {
		return EvaluationResponse{}, errors.Wrapf(err, "evaluate session %s", req.SessionID)
	}
	if resp.SessionID == "" {
		resp.SessionID = req.SessionID
	}
	return resp, nil
}

// ListEvaluations consulta el historial paginado de evaluaciones.
func (c *Client) ListEvaluations(ctx context.Context, limit, offset int) (EvaluationsPage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	endpoint := c.baseURL + evaluationsPath
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var page EvaluationsPage
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return EvaluationsPage{}, errors.Wrap(err, "list evaluations")
	}
	if page.Evaluations == nil {
		page.Evaluations = []EvaluationSession{}
	}
	return page, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.cfg.RetryBackoff
	expo.MaxElapsedTime = 0

	policy := backoff.WithContext(
		backoff.WithMaxRetries(expo, uint64(c.cfg.MaxRetries)),
		ctx,
	)

	attempt := 0
	op := func() error {
		attempt++
		err := c.attempt(ctx, method, endpoint, body, out)
		if err == nil {
			return nil
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Temporary() {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("inference engine request failed, retrying",
			"method", method,
			"endpoint", endpoint,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	}

	return backoff.RetryNotify(op, policy, notify)
}

func (c *Client) attempt(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backoff.Permanent(errors.Wrap(err, "failed to decode response"))
	}
	return nil
}
