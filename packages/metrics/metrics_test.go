package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriverMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewDeriverMetrics(registry)
	require.NoError(t, err)

	m.ObserveDerive(5 * time.Millisecond)
	m.ObserveDerive(7 * time.Millisecond)
	m.ObserveFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.addressesDerived))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deriveFailures))

	// registering twice on the same registry must fail
	_, err = NewDeriverMetrics(registry)
	assert.Error(t, err)
}

func TestClientMetrics(t *testing.T) {
	m, err := NewClientMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveRequest("getNodeInfo", OutcomeSuccess, time.Millisecond)
	m.ObserveRequest("getNodeInfo", OutcomeTransport, time.Millisecond)
	m.ObserveRequest("getNodeInfo", OutcomeTransport, time.Millisecond)
	m.SetLatestMilestone("http://localhost:14265", 1337)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("getNodeInfo", OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("getNodeInfo", OutcomeTransport)))
	assert.Equal(t, 1337.0, testutil.ToFloat64(m.latestMilestone.WithLabelValues("http://localhost:14265")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var d *DeriverMetrics
	var c *ClientMetrics

	assert.NotPanics(t, func() {
		d.ObserveDerive(time.Second)
		d.ObserveFailure()
		c.ObserveRequest("getNodeInfo", OutcomeRemote, time.Second)
		c.SetLatestMilestone("x", 1)
	})
}
