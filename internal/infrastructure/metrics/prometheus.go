// Package metrics expone las métricas Prometheus del motor contable y del API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/ledger"
)

var _ ledger.Metrics = (*Prometheus)(nil)

// Prometheus implementa ledger.Metrics y las métricas HTTP.
type Prometheus struct {
	finalizeTotal   *prometheus.CounterVec
	retriesTotal    *prometheus.CounterVec
	finalizeSeconds *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
}

// New registra las métricas en reg. Usar prometheus.DefaultRegisterer en producción y un registry nuevo en tests.
func New(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		finalizeTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "huevos_ledger_finalize_total",
			Help: "Ventas y compras procesadas por el motor contable, por resultado",
		}, []string{"kind", "result"}),
		retriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "huevos_ledger_retries_total",
			Help: "Reintentos de la transacción atómica por conflicto de concurrencia",
		}, []string{"kind"}),
		finalizeSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "huevos_ledger_finalize_seconds",
			Help:    "Duración de Finalize incluyendo reintentos",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"kind"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "huevos_http_requests_total",
			Help: "Peticiones HTTP por método, ruta y código",
		}, []string{"method", "route", "status"}),
	}
}

// ObserveFinalize registra resultado, reintentos y duración de un Finalize.
func (p *Prometheus) ObserveFinalize(kind, result string, attempts int, elapsed time.Duration) {
	p.finalizeTotal.WithLabelValues(kind, result).Inc()
	if attempts > 1 {
		p.retriesTotal.WithLabelValues(kind).Add(float64(attempts - 1))
	}
	p.finalizeSeconds.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveHTTP cuenta una petición atendida.
func (p *Prometheus) ObserveHTTP(method, route string, status int) {
	p.httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	}
	return "2xx"
}
