package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder backed by a private registry.
type PrometheusRecorder struct {
	registry         *prometheus.Registry
	exportsStarted   prometheus.Counter
	exportsCompleted *prometheus.CounterVec
	exportDuration   prometheus.Histogram
	validationErrors *prometheus.CounterVec
	stageDuration    *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder with its own registry so tests
// and embedded usage never collide on the global default.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{registry: prometheus.NewRegistry()}

	r.exportsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portfoliolab_exports_started_total",
		Help: "Number of export runs started.",
	})
	r.exportsCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfoliolab_exports_completed_total",
		Help: "Number of export runs completed, labeled by outcome.",
	}, []string{"outcome"})
	r.exportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "portfoliolab_export_duration_seconds",
		Help:    "Wall-clock duration of export runs.",
		Buckets: prometheus.DefBuckets,
	})
	r.validationErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfoliolab_validation_errors_total",
		Help: "Validation errors reported by pre-flight checks, by kind.",
	}, []string{"kind"})
	r.stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfoliolab_stage_duration_seconds",
		Help:    "Duration of individual pipeline stages.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	r.registry.MustRegister(
		r.exportsStarted, r.exportsCompleted, r.exportDuration,
		r.validationErrors, r.stageDuration,
	)
	return r
}

func (r *PrometheusRecorder) ExportStarted() { r.exportsStarted.Inc() }

func (r *PrometheusRecorder) ExportCompleted(success bool, duration time.Duration) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	r.exportsCompleted.WithLabelValues(outcome).Inc()
	r.exportDuration.Observe(duration.Seconds())
}

func (r *PrometheusRecorder) ValidationErrors(kind string, count int) {
	r.validationErrors.WithLabelValues(kind).Add(float64(count))
}

func (r *PrometheusRecorder) StageDuration(stage string, duration time.Duration) {
	r.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// Handler exposes the registry for a /metrics endpoint.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
