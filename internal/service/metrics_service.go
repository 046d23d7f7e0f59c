package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/desk-portal-api/internal/models"
)

// MetricsService encapsulates the portal's Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	upstreamTotal   *prometheus.CounterVec
	snapshotHits    prometheus.Counter
	snapshotMisses  prometheus.Counter
	deskStatus      *prometheus.GaugeVec
}

// NewMetricsService registers the portal's collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	upstreamTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Calls made to the desk service, by status (0 = unreachable)",
	}, []string{"method", "path", "status"})

	snapshotHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "desk_snapshot_hits_total",
		Help: "Board reads served from the warm snapshot cache",
	})

	snapshotMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "desk_snapshot_misses_total",
		Help: "Board reads that had to fetch from the desk service",
	})

	deskStatus := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "desk_inventory_status",
		Help: "Desk counts by reconciled display status",
	}, []string{"status"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamTotal, snapshotHits, snapshotMisses, deskStatus, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		upstreamTotal:   upstreamTotal,
		snapshotHits:    snapshotHits,
		snapshotMisses:  snapshotMisses,
		deskStatus:      deskStatus,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveUpstreamRequest counts a call to the desk service.
func (m *MetricsService) ObserveUpstreamRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamTotal.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()
}

// RecordSnapshot tracks whether a board read hit the warm snapshot.
func (m *MetricsService) RecordSnapshot(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.snapshotHits.Inc()
	} else {
		m.snapshotMisses.Inc()
	}
}

// SetDeskStats publishes the latest reconciled inventory counters.
func (m *MetricsService) SetDeskStats(stats models.InventoryStats) {
	if m == nil {
		return
	}
	m.deskStatus.WithLabelValues("assigned").Set(float64(stats.Assigned))
	m.deskStatus.WithLabelValues("available").Set(float64(stats.Available))
	m.deskStatus.WithLabelValues("maintenance").Set(float64(stats.Maintenance))
	m.deskStatus.WithLabelValues("inactive").Set(float64(stats.Inactive))
}
