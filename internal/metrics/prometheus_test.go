package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, rec *PrometheusRecorder) string {
	t.Helper()

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	return w.Body.String()
}

func TestPrometheusRecorderCounts(t *testing.T) {
	rec := NewPrometheusRecorder(prom.NewRegistry())

	rec.ObserveOperation("delete", ResultSuccess, 5*time.Millisecond)
	rec.ObserveOperation("delete", ResultSuccess, 5*time.Millisecond)
	rec.ObserveOperation("delete", ResultForbidden, time.Millisecond)
	rec.AddAffected("clearCompleted", 3)
	rec.AddAffected("clearCompleted", 0)

	out := scrape(t, rec)
	assert.Contains(t, out, `tinytodo_list_operations_total{op="delete",result="success"} 2`)
	assert.Contains(t, out, `tinytodo_list_operations_total{op="delete",result="forbidden"} 1`)
	assert.Contains(t, out, `tinytodo_list_rows_affected_total{op="clearCompleted"} 3`)
	assert.Contains(t, out, `tinytodo_list_operation_duration_seconds_count{op="delete"} 3`)
}

func TestDefaultRegistryHasRuntimeCollectors(t *testing.T) {
	rec := NewPrometheusRecorder(nil)
	rec.ObserveOperation("create", ResultSuccess, time.Millisecond)

	out := scrape(t, rec)
	assert.Contains(t, out, "tinytodo_list_operations_total")
	assert.Contains(t, out, "go_goroutines")
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *PrometheusRecorder
	rec.ObserveOperation("create", ResultSuccess, time.Millisecond)
	rec.AddAffected("create", 1)

	var noop Recorder = NoopRecorder{}
	noop.ObserveOperation("create", ResultSuccess, time.Millisecond)
}
