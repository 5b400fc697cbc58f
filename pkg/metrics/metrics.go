package metrics

import (
	"database/sql"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics агрегирует prometheus коллекторы сервиса.
// HTTP метрики пишет middleware, DB метрики пишет обёртка dbmetrics.
type Metrics struct {
	serviceUp *prometheus.GaugeVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	dbConnectionsOpen  *prometheus.GaugeVec
	dbConnectionsIdle  *prometheus.GaugeVec
	dbConnectionsInUse *prometheus.GaugeVec
	dbConnectionsMax   *prometheus.GaugeVec
	dbWaitCount        *prometheus.GaugeVec
	dbWaitDuration     *prometheus.GaugeVec
}

// New регистрирует коллекторы в default registry
func New(service string) *Metrics {
	return NewWith(prometheus.DefaultRegisterer, service)
}

// NewWith регистрирует коллекторы в переданном registry (для тестов)
func NewWith(reg prometheus.Registerer, service string) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		serviceUp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "service_up",
			Help: "Marks the service instance as running",
		}, []string{"service"}),

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of processed HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request processing time in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of executed database queries",
		}, []string{"service", "operation", "status"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query execution time in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"service", "operation"}),

		dbConnectionsOpen: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of established connections to the database",
		}, []string{"service"}),

		dbConnectionsIdle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle connections in the pool",
		}, []string{"service"}),

		dbConnectionsInUse: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		dbConnectionsMax: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_max_open",
			Help: "Maximum number of open connections allowed",
		}, []string{"service"}),

		dbWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count_total",
			Help: "Total number of connection waits",
		}, []string{"service"}),

		dbWaitDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_duration_seconds_total",
			Help: "Total time blocked waiting for a connection",
		}, []string{"service"}),
	}

	m.serviceUp.WithLabelValues(service).Set(1)

	return m
}

// RecordHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) RecordHTTPRequest(service, method, path string, statusCode int, seconds float64) {
	status := strconv.Itoa(statusCode)
	m.httpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(service, method, path).Observe(seconds)
}

// RecordDBQuery фиксирует выполненный запрос к базе
func (m *Metrics) RecordDBQuery(service, operation, status string, seconds float64) {
	m.dbQueriesTotal.WithLabelValues(service, operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(service, operation).Observe(seconds)
}

// UpdateDBPoolStats обновляет gauges состояния connection pool
func (m *Metrics) UpdateDBPoolStats(service string, stats sql.DBStats) {
	m.dbConnectionsOpen.WithLabelValues(service).Set(float64(stats.OpenConnections))
	m.dbConnectionsIdle.WithLabelValues(service).Set(float64(stats.Idle))
	m.dbConnectionsInUse.WithLabelValues(service).Set(float64(stats.InUse))
	m.dbConnectionsMax.WithLabelValues(service).Set(float64(stats.MaxOpenConnections))
	m.dbWaitCount.WithLabelValues(service).Set(float64(stats.WaitCount))
	m.dbWaitDuration.WithLabelValues(service).Set(stats.WaitDuration.Seconds())
}
