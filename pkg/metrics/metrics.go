// Package metrics expone contadores Prometheus del servicio: peticiones HTTP
// y operaciones del ciclo de vida de compuestos y trades.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados de una operación.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics registro propio y colectores del servicio.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	Operations      *prometheus.CounterVec
	ComponentsMoved *prometheus.CounterVec
	TradeValue      prometheus.Counter
}

// New crea las métricas con el namespace indicado y las registra junto a los colectores de Go y proceso.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}
	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total de peticiones HTTP",
	}, []string{"method", "path", "status"})
	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duración de peticiones HTTP en segundos",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path"})
	m.Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "composition_operations_total",
		Help:      "Operaciones de composición y trade por resultado",
	}, []string{"operation", "outcome"})
	m.ComponentsMoved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "composition_components_total",
		Help:      "Componentes vinculados o liberados por operación",
	}, []string{"operation"})
	m.TradeValue = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trade_value_total",
		Help:      "Valor acumulado de los trades confirmados",
	})

	registry.MustRegister(m.HTTPRequestsTotal, m.HTTPRequestDuration, m.Operations, m.ComponentsMoved, m.TradeValue)
	return m
}

// RecordHTTPRequest registra una petición finalizada.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordOperation cuenta una operación (assemble, edit, dismantle, retro_bundle, sell, trade...).
func (m *Metrics) RecordOperation(operation, outcome string, components int) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
	if outcome == OutcomeOK && components > 0 {
		m.ComponentsMoved.WithLabelValues(operation).Add(float64(components))
	}
}

// RecordTradeValue suma el valor total de un trade confirmado (valores negativos se ignoran).
func (m *Metrics) RecordTradeValue(v float64) {
	if m == nil || v <= 0 {
		return
	}
	m.TradeValue.Add(v)
}

// Registry registro subyacente.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler handler HTTP para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
