// Package telemetry exports careermaps Prometheus metrics.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds all careermaps metrics. Each instance owns its registry so
// tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	FilterEvaluations *prometheus.CounterVec
	FilterResults     prometheus.Histogram
	DatasetEmployers  prometheus.Gauge
	DatasetVersion    prometheus.Gauge
	DatasetReloads    *prometheus.CounterVec
	StateOperations   *prometheus.CounterVec
	SessionsActive    prometheus.Gauge
	EventClients      prometheus.Gauge
	RequestDuration   *prometheus.HistogramVec
}

// New registers every metric on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		FilterEvaluations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "careermaps_filter_evaluations_total",
			Help: "Directory view evaluations by memo outcome",
		}, []string{"cache"}),

		FilterResults: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "careermaps_filter_results",
			Help:    "Employers matched per evaluation",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500},
		}),

		DatasetEmployers: f.NewGauge(prometheus.GaugeOpts{
			Name: "careermaps_dataset_employers",
			Help: "Employers in the published dataset snapshot",
		}),

		DatasetVersion: f.NewGauge(prometheus.GaugeOpts{
			Name: "careermaps_dataset_version",
			Help: "Version of the published dataset snapshot",
		}),

		DatasetReloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "careermaps_dataset_reloads_total",
			Help: "Dataset load attempts by result",
		}, []string{"result"}),

		StateOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "careermaps_state_operations_total",
			Help: "Filter state controller operations",
		}, []string{"op"}),

		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "careermaps_sessions_active",
			Help: "Live filter sessions",
		}),

		EventClients: f.NewGauge(prometheus.GaugeOpts{
			Name: "careermaps_event_clients",
			Help: "Connected dataset event stream clients",
		}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "careermaps_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request latency by matched route. Unmatched requests
// are labelled "unmatched" to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// ObserveEvaluation records one directory evaluation.
func (m *Metrics) ObserveEvaluation(cached bool, results int) {
	label := CacheMiss
	if cached {
		label = CacheHit
	}
	m.FilterEvaluations.WithLabelValues(label).Inc()
	if !cached {
		m.FilterResults.Observe(float64(results))
	}
}

// ObserveReload records a dataset load attempt.
func (m *Metrics) ObserveReload(err error, version uint64, employers int) {
	if err != nil {
		m.DatasetReloads.WithLabelValues(ResultFailure).Inc()
		return
	}
	m.DatasetReloads.WithLabelValues(ResultSuccess).Inc()
	m.DatasetEmployers.Set(float64(employers))
	m.DatasetVersion.Set(float64(version))
}
