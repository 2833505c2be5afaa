package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "credit_advisor"

// Metrics agrupa los colectores del servicio en un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	recommendations   *prometheus.CounterVec
	emptyResults      prometheus.Counter
	evaluations       *prometheus.CounterVec
	inferenceDuration *prometheus.HistogramVec
	cacheHits         *prometheus.CounterVec
	rateLimited       prometheus.Counter
}

// NewMetrics crea y registra los colectores.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Product candidates produced, by product id.",
		}, []string{"product"}),
		emptyResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_recommendations_total",
			Help:      "Evaluations where no product matched.",
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Inference engine evaluations, by final decision.",
		}, []string{"decision"}),
		inferenceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_duration_seconds",
			Help:      "Latency of inference engine calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inference_cache_total",
			Help:      "Inference cache lookups, by result.",
		}, []string{"result"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}

	m.registry.MustRegister(
		m.recommendations,
		m.emptyResults,
		m.evaluations,
		m.inferenceDuration,
		m.cacheHits,
		m.rateLimited,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRecommendations(productIDs []string) {
	if m == nil {
		return
	}
	if len(productIDs) == 0 {
		m.emptyResults.Inc()
		return
	}
	for _, id := range productIDs {
		m.recommendations.WithLabelValues(id).Inc()
	}
}

func (m *Metrics) ObserveEvaluation(decision string) {
	if m == nil {
		return
	}
	if decision == "" {
		decision = "unknown"
	}
	m.evaluations.WithLabelValues(decision).Inc()
}

func (m *Metrics) ObserveInference(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.inferenceDuration.WithLabelValues(operation, outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheHits.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
