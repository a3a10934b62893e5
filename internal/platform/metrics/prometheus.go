package metrics

import (
	"net/http"

	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds custom Prometheus metrics.
type MetricsManager struct {
	Registry            *prometheus.Registry
	HostelsCreatedTotal prometheus.Counter
	HostelUpdatesTotal  prometheus.Counter
	HostelDeletesTotal  prometheus.Counter
	ReviewsCreatedTotal prometheus.Counter
	PhotoUploadsTotal   prometheus.Counter
	HTTPErrorsTotal     *prometheus.CounterVec
	HTTPRequestLatency  *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers custom Prometheus metrics on a
// dedicated registry.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	hostelsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "hostels_created_total",
		Help:      "Total number of hostels created.",
	})
	hostelUpdatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "hostel_updates_total",
		Help:      "Total number of hostels updated.",
	})
	hostelDeletesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "hostel_deletes_total",
		Help:      "Total number of hostels deleted.",
	})
	reviewsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created.",
	})
	photoUploadsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "photo_uploads_total",
		Help:      "Total number of photos uploaded to object storage.",
	})
	httpErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "http_errors_total",
		Help:      "Total number of HTTP error responses by route and status.",
	}, []string{"route", "status"})
	httpRequestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	registry.MustRegister(
		hostelsCreatedTotal,
		hostelUpdatesTotal,
		hostelDeletesTotal,
		reviewsCreatedTotal,
		photoUploadsTotal,
		httpErrorsTotal,
		httpRequestLatency,
	)

	return &MetricsManager{
		Registry:            registry,
		HostelsCreatedTotal: hostelsCreatedTotal,
		HostelUpdatesTotal:  hostelUpdatesTotal,
		HostelDeletesTotal:  hostelDeletesTotal,
		ReviewsCreatedTotal: reviewsCreatedTotal,
		PhotoUploadsTotal:   photoUploadsTotal,
		HTTPErrorsTotal:     httpErrorsTotal,
		HTTPRequestLatency:  httpRequestLatency,
	}
}

// ServeMetrics starts an HTTP server exposing /metrics for this registry.
// It blocks, so it is expected to run in its own goroutine.
func (m *MetricsManager) ServeMetrics(port string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	log.Info("Starting Prometheus metrics server", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Error("Prometheus metrics server failed", zap.Error(err))
	}
}
