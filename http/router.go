package http

import (
	"net/http"

	"credit-advisor/observability"
)

// NewRouter registra las rutas del API. Las rutas de crédito pasan por el
// limitador; /metrics y /healthz no.
func NewRouter(
	handler *CreditHandler,
	limiter *RateLimiter,
	proxies *TrustedProxies,
	metrics *observability.Metrics,
) *http.ServeMux {

	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, proxies, metrics, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/credit/validate", limited(handler.Validate))
	mux.Handle("/credit/recommend", limited(handler.Recommend))
	mux.Handle("/credit/explain", limited(handler.Explain))
	mux.Handle("/credit/evaluate", limited(handler.Evaluate))
	mux.Handle("/credit/evaluations", limited(handler.Evaluations))
	mux.Handle("/credit/advice/{sessionID}", limited(handler.Advice))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if metrics != nil {
		mux.Handle("/metrics", metrics.Handler())
	}

	return mux
}
