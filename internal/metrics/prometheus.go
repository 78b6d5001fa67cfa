package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry   *prom.Registry
	operations *prom.CounterVec
	duration   *prom.HistogramVec
	affected   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the operation metrics. A nil
// registry gets a fresh one with the Go and process collectors.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	pr := &PrometheusRecorder{
		registry: reg,
		operations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tinytodo",
			Name:      "list_operations_total",
			Help:      "List operations by operation and result",
		}, []string{"op", "result"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "tinytodo",
			Name:      "list_operation_duration_seconds",
			Help:      "Duration of list operations",
			Buckets:   prom.DefBuckets,
		}, []string{"op"}),
		affected: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tinytodo",
			Name:      "list_rows_affected_total",
			Help:      "Rows reported as affected by list operations",
		}, []string{"op"}),
	}
	reg.MustRegister(pr.operations, pr.duration, pr.affected)

	return pr
}

func (p *PrometheusRecorder) ObserveOperation(op, result string, d time.Duration) {
	if p == nil {
		return
	}
	p.operations.WithLabelValues(op, result).Inc()
	p.duration.WithLabelValues(op).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddAffected(op string, n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.affected.WithLabelValues(op).Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
