package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smart_scheduler"

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec
	HTTPRateLimited      *prometheus.CounterVec

	// База данных
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec
	DBWaitCount     *prometheus.GaugeVec

	// Планировщик
	SchedulerConflicts    *prometheus.CounterVec
	SchedulerSlotSearches *prometheus.CounterVec

	// Доменные показатели, обновляются фоновым заданием
	OpenTasks        *prometheus.GaugeVec
	OverdueTasks     *prometheus.GaugeVec
	OverdueDeadlines *prometheus.GaugeVec
	JobRuns          *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		HTTPRequestsInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_in_flight",
			Help:        "Number of HTTP requests being served.",
			ConstLabels: constLabels,
		}, []string{}),

		HTTPRateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "rate_limited_total",
			Help:        "Requests rejected by the rate limiter.",
			ConstLabels: constLabels,
		}, []string{"route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database call latency by operation.",
			Buckets:     []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_errors_total",
			Help:        "Failed database calls by operation.",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "connections",
			Help:        "Connection pool state.",
			ConstLabels: constLabels,
		}, []string{"state"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: constLabels,
		}, []string{}),

		SchedulerConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "scheduler",
			Name:        "conflicts_total",
			Help:        "Rejected schedule attempts because of time conflicts.",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		SchedulerSlotSearches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "scheduler",
			Name:        "slot_searches_total",
			Help:        "Available slot searches by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		OpenTasks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "tasks",
			Name:        "open",
			Help:        "Tasks that are neither completed nor cancelled.",
			ConstLabels: constLabels,
		}, []string{}),

		OverdueTasks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "tasks",
			Name:        "overdue",
			Help:        "Open tasks past their due date.",
			ConstLabels: constLabels,
		}, []string{}),

		OverdueDeadlines: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "deadlines",
			Name:        "overdue",
			Help:        "Incomplete deadlines past their due date.",
			ConstLabels: constLabels,
		}, []string{}),

		JobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "jobs",
			Name:        "runs_total",
			Help:        "Background job runs by job and result.",
			ConstLabels: constLabels,
		}, []string{"job", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.HTTPRateLimited,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.DBWaitCount,
		m.SchedulerConflicts,
		m.SchedulerSlotSearches,
		m.OpenTasks,
		m.OverdueTasks,
		m.OverdueDeadlines,
		m.JobRuns,
	)

	return m
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler возвращает HTTP handler для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// IncConflict увеличивает счетчик конфликтов. Безопасен для nil.
func (m *Metrics) IncConflict(operation string) {
	if m == nil {
		return
	}
	m.SchedulerConflicts.WithLabelValues(operation).Inc()
}

// IncSlotSearch учитывает поиск свободных слотов. Безопасен для nil.
func (m *Metrics) IncSlotSearch(found bool) {
	if m == nil {
		return
	}
	outcome := "empty"
	if found {
		outcome = "found"
	}
	m.SchedulerSlotSearches.WithLabelValues(outcome).Inc()
}
