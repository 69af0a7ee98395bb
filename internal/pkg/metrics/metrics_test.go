package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveIngest(t *testing.T) {
	m := New(nil)

	m.ObserveIngest(OutcomeAccepted, "IN", 5*time.Millisecond)
	m.ObserveIngest(OutcomeAccepted, "IN", 7*time.Millisecond)
	m.ObserveIngest(OutcomeCooldown, "IN", time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ingestTotal.WithLabelValues(OutcomeAccepted, "IN")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ingestTotal.WithLabelValues(OutcomeCooldown, "IN")))
}

func TestMetrics_ObservePerformances(t *testing.T) {
	m := New(nil)

	m.ObservePerformances(5, 2)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.performancesComputed.WithLabelValues("true")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.performancesComputed.WithLabelValues("false")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveIngest(OutcomeAccepted, "OUT", time.Second)
		m.ObserveAnomaly("OUT_AFTER_OUT")
		m.ObservePerformances(1, 1)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New(nil)
	m.ObserveAnomaly("IN_AFTER_IN")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `punctoo_scan_anomalies_total{anomaly_code="IN_AFTER_IN"} 1`))
}
