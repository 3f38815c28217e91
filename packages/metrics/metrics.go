// Package metrics defines the prometheus collectors exposed by the address deriver and the node client.
package metrics

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "addrinfo"

// DeriverMetrics holds the collectors of the address deriver.
type DeriverMetrics struct {
	addressesDerived prometheus.Counter
	deriveDuration   prometheus.Histogram
	deriveFailures   prometheus.Counter
}

// NewDeriverMetrics creates the deriver collectors and registers them on the given registerer.
func NewDeriverMetrics(registry prometheus.Registerer) (*DeriverMetrics, error) {
	m := &DeriverMetrics{
		addressesDerived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "addresses_derived_total",
			Help:      "Number of addresses derived.",
		}),
		deriveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "derive_duration_seconds",
			Help:      "Time spent deriving a single address.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		deriveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derive_failures_total",
			Help:      "Number of rejected derivation requests.",
		}),
	}

	for _, collector := range []prometheus.Collector{m.addressesDerived, m.deriveDuration, m.deriveFailures} {
		if err := registry.Register(collector); err != nil {
			return nil, errors.Wrap(err, "failed to register deriver metrics")
		}
	}

	return m, nil
}

// ObserveDerive records a successful derivation that took the given time.
func (m *DeriverMetrics) ObserveDerive(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.addressesDerived.Inc()
	m.deriveDuration.Observe(elapsed.Seconds())
}

// ObserveFailure records a rejected derivation.
func (m *DeriverMetrics) ObserveFailure() {
	if m == nil {
		return
	}
	m.deriveFailures.Inc()
}
