package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллектор метрик сервиса
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	// Бронирования
	BookingsCommitted       *prometheus.CounterVec
	BookingCommitFailures   *prometheus.CounterVec
	LedgerUpsertFailures    *prometheus.CounterVec
	BookingAllocatedSeconds *prometheus.HistogramVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
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

		BookingsCommitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_committed_total",
			Help: "Total number of committed bookings",
		}, []string{"service"}),

		BookingCommitFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_commit_failures_total",
			Help: "Total number of rejected or failed booking commits by error kind",
		}, []string{"service", "kind"}),

		LedgerUpsertFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_upsert_failures_total",
			Help: "Lane capacity ledger increments skipped after a failed upsert",
		}, []string{"service"}),

		BookingAllocatedSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "booking_allocated_seconds",
			Help:    "Seconds allocated to a single capacity interval by a booking",
			Buckets: []float64{60, 300, 600, 900, 1800, 3600, 7200},
		}, []string{"service"}),
	}
}

// ServiceName имя сервиса, используемое в лейблах
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

func (m *Metrics) IncBookingCommitted() {
	m.BookingsCommitted.WithLabelValues(m.serviceName).Inc()
}

func (m *Metrics) IncBookingCommitFailure(kind string) {
	m.BookingCommitFailures.WithLabelValues(m.serviceName, kind).Inc()
}

func (m *Metrics) IncLedgerUpsertFailure() {
	m.LedgerUpsertFailures.WithLabelValues(m.serviceName).Inc()
}

func (m *Metrics) ObserveAllocatedSeconds(seconds int) {
	m.BookingAllocatedSeconds.WithLabelValues(m.serviceName).Observe(float64(seconds))
}

// Noop реализация для запуска без метрик
type Noop struct{}

func (Noop) IncBookingCommitted()           {}
func (Noop) IncBookingCommitFailure(string) {}
func (Noop) IncLedgerUpsertFailure()        {}
func (Noop) ObserveAllocatedSeconds(int)    {}
