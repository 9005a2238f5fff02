package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/unimarket/catalog-service/internal/platform/logger"
)

// MetricsManager holds the service's Prometheus collectors on a private
// registry. All increment helpers are nil-safe so test wiring can skip
// metrics entirely.
type MetricsManager struct {
	Registry              *prometheus.Registry
	ListingsCreatedTotal  prometheus.Counter
	ListingsUpdatedTotal  prometheus.Counter
	ListingsDeletedTotal  prometheus.Counter
	ListingsVerifiedTotal prometheus.Counter
	SearchesTotal         prometheus.Counter
	APIErrorsTotal        *prometheus.CounterVec
	RequestLatency        *prometheus.HistogramVec
}

func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		ListingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "listings_created_total",
			Help:      "Total number of listings created.",
		}),
		ListingsUpdatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "listings_updated_total",
			Help:      "Total number of listings updated.",
		}),
		ListingsDeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "listings_deleted_total",
			Help:      "Total number of listings deleted.",
		}),
		ListingsVerifiedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "listings_verified_total",
			Help:      "Total number of listings promoted to verified.",
		}),
		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "searches_total",
			Help:      "Total number of catalog searches executed.",
		}),
		APIErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "api_errors_total",
			Help:      "Total number of API errors by operation.",
		}, []string{"operation", "error_type"}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "api_request_latency_seconds",
			Help:      "Latency of catalog operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	registry.MustRegister(
		m.ListingsCreatedTotal,
		m.ListingsUpdatedTotal,
		m.ListingsDeletedTotal,
		m.ListingsVerifiedTotal,
		m.SearchesTotal,
		m.APIErrorsTotal,
		m.RequestLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

func (m *MetricsManager) IncCreated() {
	if m != nil {
		m.ListingsCreatedTotal.Inc()
	}
}

func (m *MetricsManager) IncUpdated() {
	if m != nil {
		m.ListingsUpdatedTotal.Inc()
	}
}

func (m *MetricsManager) IncDeleted() {
	if m != nil {
		m.ListingsDeletedTotal.Inc()
	}
}

func (m *MetricsManager) IncVerified() {
	if m != nil {
		m.ListingsVerifiedTotal.Inc()
	}
}

func (m *MetricsManager) IncSearches() {
	if m != nil {
		m.SearchesTotal.Inc()
	}
}

func (m *MetricsManager) ObserveLatency(operation string, seconds float64) {
	if m != nil {
		m.RequestLatency.WithLabelValues(operation).Observe(seconds)
	}
}

func (m *MetricsManager) IncError(operation, errorType string) {
	if m != nil {
		m.APIErrorsTotal.WithLabelValues(operation, errorType).Inc()
	}
}

// StartMetricsServer exposes the registry on /metrics. Blocks until the
// server stops, so callers run it in a goroutine.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting",
		zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{Addr: ":" + port, Handler: mux}
	return server.ListenAndServe()
}
