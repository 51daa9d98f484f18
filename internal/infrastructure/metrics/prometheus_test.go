package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/metrics"
)

func TestObserveFinalize_CuentaResultadosYReintentos(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveFinalize("venta", "ok", 1, 10*time.Millisecond)
	m.ObserveFinalize("venta", "ok", 3, 20*time.Millisecond)
	m.ObserveFinalize("compra", "insufficient_balance", 1, time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "huevos_ledger_finalize_seconds"))

	mfs, err := reg.Gather()
	assert.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range mfs {
		for _, metric := range mf.GetMetric() {
			if metric.GetCounter() == nil {
				continue
			}
			key := mf.GetName()
			for _, l := range metric.GetLabel() {
				key += "|" + l.GetValue()
			}
			values[key] = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, values["huevos_ledger_finalize_total|venta|ok"])
	assert.Equal(t, 1.0, values["huevos_ledger_finalize_total|compra|insufficient_balance"])
	assert.Equal(t, 2.0, values["huevos_ledger_retries_total|venta"])
}

func TestObserveHTTP_AgrupaPorClase(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.ObserveHTTP("POST", "/api/ventas", 201)
	m.ObserveHTTP("POST", "/api/ventas", 409)
	m.ObserveHTTP("POST", "/api/ventas", 412)

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "huevos_http_requests_total"))
}
