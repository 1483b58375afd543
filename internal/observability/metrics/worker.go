package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
)

// WorkerMetrics tracks the classification worker: per-stage outcomes,
// confidence distribution, and the human-review rate.
type WorkerMetrics struct {
	registry *prometheus.Registry

	classifyTotal    *prometheus.CounterVec
	classifyDuration *prometheus.HistogramVec
	classifyInFlight prometheus.Gauge
	confidenceLevel  *prometheus.CounterVec
	reviewFlagged    *prometheus.CounterVec
	queueLag         *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	classifyTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rsc",
			Subsystem: "worker",
			Name:      "classification_total",
			Help:      "Total classified documents by cascade stage and status.",
		},
		[]string{"service", "model_used", "status"},
	)
	classifyDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rsc",
			Subsystem: "worker",
			Name:      "classification_duration_seconds",
			Help:      "Classification duration in seconds by cascade stage.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "model_used"},
	)
	classifyInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rsc",
			Subsystem: "worker",
			Name:      "classification_in_flight",
			Help:      "Number of in-flight classification jobs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	confidenceLevel := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rsc",
			Subsystem: "worker",
			Name:      "confidence_level_total",
			Help:      "Final confidence bucket distribution.",
		},
		[]string{"service", "level"},
	)
	reviewFlagged := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rsc",
			Subsystem: "worker",
			Name:      "human_review_flagged_total",
			Help:      "Documents routed to the human review queue.",
		},
		[]string{"service"},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rsc",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between job enqueue and classification start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(classifyTotal, classifyDuration, classifyInFlight, confidenceLevel, reviewFlagged, queueLag)

	return &WorkerMetrics{
		registry:         registry,
		classifyTotal:    classifyTotal,
		classifyDuration: classifyDuration,
		classifyInFlight: classifyInFlight,
		confidenceLevel:  confidenceLevel,
		reviewFlagged:    reviewFlagged,
		queueLag:         queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartJob() {
	m.classifyInFlight.Inc()
}

func (m *WorkerMetrics) FinishJob(service string, duration time.Duration, result *domain.ClassificationResult, err error) {
	m.classifyInFlight.Dec()

	status := "success"
	model := "none"
	if err != nil {
		status = "error"
	}
	if result != nil {
		model = string(result.ModelUsed)
		m.confidenceLevel.WithLabelValues(service, string(result.ConfidenceLevel)).Inc()
		if result.NeedsHumanReview {
			m.reviewFlagged.WithLabelValues(service).Inc()
		}
		m.classifyDuration.WithLabelValues(service, model).Observe(duration.Seconds())
	}

	m.classifyTotal.WithLabelValues(service, model, status).Inc()
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
