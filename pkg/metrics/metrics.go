// Package metrics expone los colectores Prometheus de la API sobre un registro propio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores de la aplicación.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	validations       *prometheus.CounterVec
	ledgerEntries     *prometheus.CounterVec
	ledgerPublishErrs prometheus.Counter
}

// New crea el registro con los colectores de proceso y de runtime Go más los de negocio.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y estado.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_validations_total",
			Help:      "Validaciones de operaciones por tipo y resultado.",
		}, []string{"kind", "result"}),
		ledgerEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_ledger_entries_total",
			Help:      "Entradas del kardex escritas por tipo de movimiento.",
		}, []string{"operation_type"}),
		ledgerPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_ledger_publish_errors_total",
			Help:      "Errores al publicar eventos del kardex.",
		}),
	}
	reg.MustRegister(m.httpRequests, m.httpDuration, m.validations, m.ledgerEntries, m.ledgerPublishErrs)
	return m
}

// Handler devuelve el handler HTTP de exposición (/metrics).
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registro subyacente.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP registra una petición terminada.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ValidationDone cuenta una validación; result es "ok" o el código de error.
func (m *Metrics) ValidationDone(kind, result string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(kind, result).Inc()
}

// LedgerEntryWritten cuenta una entrada del kardex.
func (m *Metrics) LedgerEntryWritten(operationType string) {
	if m == nil {
		return
	}
	m.ledgerEntries.WithLabelValues(operationType).Inc()
}

// LedgerPublishFailed cuenta un fallo de publicación.
func (m *Metrics) LedgerPublishFailed() {
	if m == nil {
		return
	}
	m.ledgerPublishErrs.Inc()
}
