// Package metrics exposes Prometheus collectors for the soil analysis service.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess     = "success"
	OutcomeClientError = "client_error"
	OutcomeFailure     = "failure"
	OutcomeCanceled    = "canceled"
)

// Metrics groups the service collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	analyses         *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	layerQueries     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soil",
			Name:      "analyses_total",
			Help:      "Soil analysis requests by provider variant and outcome.",
		}, []string{"variant", "outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "soil",
			Name:      "provider_duration_seconds",
			Help:      "Time spent collecting measurements for one location.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"variant"}),
		layerQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soil",
			Name:      "layer_queries_total",
			Help:      "Remote area-mean aggregations by layer and outcome.",
		}, []string{"layer", "outcome"}),
	}
	reg.MustRegister(m.analyses, m.providerDuration, m.layerQueries)
	return m
}

// ObserveAnalysis records one analysis request.
func (m *Metrics) ObserveAnalysis(variant, outcome string) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(variant, outcome).Inc()
}

// ObserveProvider records how long a provider took.
func (m *Metrics) ObserveProvider(variant string, d time.Duration) {
	if m == nil {
		return
	}
	m.providerDuration.WithLabelValues(variant).Observe(d.Seconds())
}

// ObserveLayerQuery records one remote layer aggregation. Aggregations cut
// short by a canceled context count as canceled, not failed.
func (m *Metrics) ObserveLayerQuery(layer string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	switch {
	case errors.Is(err, context.Canceled):
		outcome = OutcomeCanceled
	case err != nil:
		outcome = OutcomeFailure
	}
	m.layerQueries.WithLabelValues(layer, outcome).Inc()
}
