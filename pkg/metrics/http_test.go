package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.IncInFlight()
	m.ObserveRequest("POST", "/api/orders", "201", 25*time.Millisecond)
	m.DecInFlight()

	count := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/orders", "201"))
	assert.Equal(t, float64(1), count)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inflight))
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var m *HTTPMetrics
	require.NotPanics(t, func() {
		m.ObserveRequest("GET", "/health", "200", time.Millisecond)
		m.IncInFlight()
		m.DecInFlight()
	})
}

func TestOrderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)

	m.IncCreated()
	m.IncFailed("insufficient_stock")
	m.IncTransition("pending", "processing")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.created))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.failed.WithLabelValues("insufficient_stock")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.transitions.WithLabelValues("pending", "processing")))
}
