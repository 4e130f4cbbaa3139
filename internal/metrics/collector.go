// Package metrics provides internal metrics collection for extraction calls.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for extraction requests.
const (
	OutcomeOK              = "ok"
	OutcomeBackendError    = "backend_error"
	OutcomeValidationError = "validation_error"
)

// Collector aggregates Prometheus collectors for the extraction pipeline.
// All methods are nil-safe so library code can run without metrics wired.
type Collector struct {
	extractionsTotal   *prometheus.CounterVec
	extractionDuration *prometheus.HistogramVec
	validationFailures *prometheus.CounterVec
	tokensUsed         *prometheus.CounterVec
}

// NewCollector creates a Collector registered on reg. A nil reg uses the
// default registerer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		extractionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "extractflow",
			Name:      "extractions_total",
			Help:      "Total extraction requests by schema and outcome.",
		}, []string{"schema", "outcome"}),
		extractionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "extractflow",
			Name:      "extraction_duration_seconds",
			Help:      "Extraction round-trip duration including the backend call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"schema"}),
		validationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "extractflow",
			Name:      "validation_failures_total",
			Help:      "Backend payloads rejected by schema validation.",
		}, []string{"schema"}),
		tokensUsed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "extractflow",
			Name:      "tokens_used_total",
			Help:      "Tokens consumed by extraction requests.",
		}, []string{"provider", "kind"}),
	}
}

// ObserveExtraction records one extraction request.
func (c *Collector) ObserveExtraction(schema, outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.extractionsTotal.WithLabelValues(schema, outcome).Inc()
	c.extractionDuration.WithLabelValues(schema).Observe(d.Seconds())
}

// IncValidationFailure records a schema validation rejection.
func (c *Collector) IncValidationFailure(schema string) {
	if c == nil {
		return
	}
	c.validationFailures.WithLabelValues(schema).Inc()
}

// AddTokens records token usage reported by the backend.
func (c *Collector) AddTokens(provider string, promptTokens, completionTokens int) {
	if c == nil {
		return
	}
	if promptTokens > 0 {
		c.tokensUsed.WithLabelValues(provider, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		c.tokensUsed.WithLabelValues(provider, "completion").Add(float64(completionTokens))
	}
}
