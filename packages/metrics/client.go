package metrics

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes used as label values of the node request collectors.
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport"
	OutcomeProtocol  = "protocol"
	OutcomeRemote    = "remote"
)

// ClientMetrics holds the collectors of the node client.
type ClientMetrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	latestMilestone *prometheus.GaugeVec
}

// NewClientMetrics creates the node client collectors and registers them on the given registerer.
func NewClientMetrics(registry prometheus.Registerer) (*ClientMetrics, error) {
	m := &ClientMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_requests_total",
			Help:      "Number of node API requests by command and outcome.",
		}, []string{"command", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "node_request_duration_seconds",
			Help:      "Round trip time of node API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		latestMilestone: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "node_latest_milestone_index",
			Help:      "Latest milestone index reported by a node.",
		}, []string{"endpoint"}),
	}

	for _, collector := range []prometheus.Collector{m.requests, m.requestDuration, m.latestMilestone} {
		if err := registry.Register(collector); err != nil {
			return nil, errors.Wrap(err, "failed to register client metrics")
		}
	}

	return m, nil
}

// ObserveRequest records a finished request of the given command.
func (m *ClientMetrics) ObserveRequest(command, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(command, outcome).Inc()
	m.requestDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// SetLatestMilestone records the latest milestone index reported by the node at endpoint.
func (m *ClientMetrics) SetLatestMilestone(endpoint string, index uint32) {
	if m == nil {
		return
	}
	m.latestMilestone.WithLabelValues(endpoint).Set(float64(index))
}
