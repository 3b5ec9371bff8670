package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса.
// Все методы безопасно вызывать на nil (метрики выключены в конфигурации).
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	AdmissionsTotal           *prometheus.CounterVec
	BlockOverridesTotal       *prometheus.CounterVec
	NotificationFailuresTotal *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus (его отдаёт promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		AdmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_admissions_total",
			Help: "Booking admission attempts by outcome",
		}, []string{"service", "outcome"}),

		BlockOverridesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blocked_date_overrides_total",
			Help: "Blocked dates released by admitted bookings, by external source",
		}, []string{"service", "source"}),

		NotificationFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_notification_failures_total",
			Help: "Confirmation notifications that failed after admission",
		}, []string{"service"}),
	}
}

// ServiceName имя сервиса, которым размечаются метрики
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// ObserveAdmission учитывает исход попытки бронирования (admitted, room_unavailable, conflict, ...)
func (m *Metrics) ObserveAdmission(outcome string) {
	if m == nil {
		return
	}
	m.AdmissionsTotal.WithLabelValues(m.serviceName, outcome).Inc()
}

// ObserveOverride учитывает снятую блокировку дат. Внутренние блокировки размечаются как "internal"
func (m *Metrics) ObserveOverride(source string) {
	if m == nil {
		return
	}
	if source == "" {
		source = "internal"
	}
	m.BlockOverridesTotal.WithLabelValues(m.serviceName, source).Inc()
}

// ObserveNotificationFailure учитывает неудачную отправку подтверждения
func (m *Metrics) ObserveNotificationFailure() {
	if m == nil {
		return
	}
	m.NotificationFailuresTotal.WithLabelValues(m.serviceName).Inc()
}
