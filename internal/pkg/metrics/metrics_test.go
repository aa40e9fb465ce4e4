//go:build unit

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"purchase-engine/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("success: counters are exposed on the handler", func(t *testing.T) {
		m := metrics.New()
		m.AckAttempt()
		m.AckAttempt()
		m.AckResult(false)
		m.PurchaseOutcome("success", 0.2)
		m.RestoreItem("duplicate")

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "purchase_engine_ack_attempts_total 2")
		assert.Contains(t, body, `purchase_engine_ack_results_total{result="failure"} 1`)
		assert.Contains(t, body, `purchase_engine_restore_items_total{result="duplicate"} 1`)
	})

	t.Run("success: gather reports every registered family", func(t *testing.T) {
		m := metrics.New()
		m.Reconciliation("duplicate")
		m.StrayEvent("purchase_updated")

		count, err := testutil.GatherAndCount(m.Registry(),
			"purchase_engine_ledger_reconciliations_total",
			"purchase_engine_events_stray_total",
		)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		expected := `
# HELP purchase_engine_events_stray_total Platform events that arrived with no pending purchase.
# TYPE purchase_engine_events_stray_total counter
purchase_engine_events_stray_total{kind="purchase_updated"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "purchase_engine_events_stray_total"))
	})

	t.Run("success: nil metrics is a no-op", func(t *testing.T) {
		var m *metrics.Metrics
		assert.NotPanics(t, func() {
			m.AckAttempt()
			m.AckResult(true)
			m.PurchaseOutcome("cancelled", 1)
			m.Reconciliation("success")
			m.RestoreItem("failed")
			m.StrayEvent("purchase_error")
		})
		assert.Nil(t, m.Registry())
	})
}
