package http

import (
	"math"
	"net/http"
	"strconv"

	"credit-advisor/observability"
)

// RateLimitMiddleware rechaza con 429 a los clientes sin tokens. El cliente
// se identifica con proxies.ClientIP; proxies nil usa solo la IP remota.
func RateLimitMiddleware(
	limiter *RateLimiter,
	proxies *TrustedProxies,
	metrics *observability.Metrics,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		allowed, wait := limiter.Allow(proxies.ClientIP(r))
		if !allowed {
			metrics.ObserveRateLimited()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			http.Error(w, "límite de solicitudes excedido", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
