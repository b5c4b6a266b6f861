package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec

	verificationsTotal *prometheus.CounterVec
	bookingsCreated    *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
}

// New регистрирует метрики в reg. Если reg равен nil, используется prometheus.DefaultRegisterer
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg))

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"db", "operation"}),
		dbQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"db", "operation"}),
		dbOpenConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"db"}),
		dbInUseConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"db"}),
		dbIdleConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"db"}),
		dbWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"db"}),

		verificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkin_verifications_total",
			Help: "Ticket verifications by outcome",
		}, []string{"reason"}),
		bookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkin_bookings_created_total",
			Help: "Created bookings",
		}, []string{"slot_available"}),
		notificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkin_notifications_total",
			Help: "Confirmation notifications by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveHTTPRequest учитывает обработанный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery учитывает выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(db, operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(db, operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(db, operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(db string, stats sql.DBStats) {
	m.dbOpenConns.WithLabelValues(db).Set(float64(stats.OpenConnections))
	m.dbInUseConns.WithLabelValues(db).Set(float64(stats.InUse))
	m.dbIdleConns.WithLabelValues(db).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(db).Set(float64(stats.WaitCount))
}

// IncVerification учитывает результат проверки билета
func (m *Metrics) IncVerification(reason string) {
	m.verificationsTotal.WithLabelValues(reason).Inc()
}

// IncBookingCreated учитывает созданное бронирование
func (m *Metrics) IncBookingCreated(slotAvailable bool) {
	m.bookingsCreated.WithLabelValues(strconv.FormatBool(slotAvailable)).Inc()
}

// IncNotification учитывает попытку отправки подтверждения (sent, failed, skipped)
func (m *Metrics) IncNotification(outcome string) {
	m.notificationsTotal.WithLabelValues(outcome).Inc()
}
