// Package metrics provides Prometheus collectors for keyboard resolution.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the keyboard resolver.
type Metrics struct {
	// Resolutions by keyboard mode and effective plate type
	Resolutions *prometheus.CounterVec

	// Rejected requests by validation kind
	Failures *prometheus.CounterVec

	// Rule hits by chain ("layout", "keys") and rule name
	RuleHits *prometheus.CounterVec

	// Duration of a full resolution
	ResolveLatency prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg uses the
// default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "platekb_resolutions_total",
			Help: "Total keyboard resolutions by keyboard type and plate type",
		}, []string{"keyboard_type", "number_type"}),

		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "platekb_resolution_failures_total",
			Help: "Total rejected resolutions by error kind",
		}, []string{"kind"}), // kind: "InvalidRange", "InvalidType", "Internal"

		RuleHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "platekb_rule_hits_total",
			Help: "Total rule matches by chain and rule name",
		}, []string{"chain", "rule"}),

		ResolveLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "platekb_resolve_duration_seconds",
			Help:    "Duration of a keyboard resolution",
			Buckets: []float64{0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.005},
		}),
	}
}

// IncrementResolution records a successful resolution.
func (m *Metrics) IncrementResolution(keyboardType, numberType string) {
	if m != nil {
		m.Resolutions.WithLabelValues(keyboardType, numberType).Inc()
	}
}

// IncrementFailure records a rejected resolution.
func (m *Metrics) IncrementFailure(kind string) {
	if m != nil {
		m.Failures.WithLabelValues(kind).Inc()
	}
}

// IncrementRule records which rule of a chain produced the result.
func (m *Metrics) IncrementRule(chain, rule string) {
	if m != nil {
		m.RuleHits.WithLabelValues(chain, rule).Inc()
	}
}

// ObserveResolveLatency records the duration of a resolution.
func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}
