// Package metrics expone contadores Prometheus del libro de bodega.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

var _ inventory.Observer = (*LedgerMetrics)(nil)

// LedgerMetrics cuenta eventos aplicados/rechazados y unidades movidas por tipo.
type LedgerMetrics struct {
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	units    *prometheus.CounterVec
}

// NewLedgerMetrics registra los contadores en reg.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	m := &LedgerMetrics{
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bodega",
			Name:      "events_applied_total",
			Help:      "Eventos aceptados por tipo.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bodega",
			Name:      "events_rejected_total",
			Help:      "Eventos rechazados por tipo y clase de error.",
		}, []string{"kind", "error_kind"}),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bodega",
			Name:      "movement_units_total",
			Help:      "Unidades registradas en el libro por tipo de movimiento.",
		}, []string{"type"}),
	}
	reg.MustRegister(m.applied, m.rejected, m.units)
	return m
}

func (m *LedgerMetrics) EventApplied(_ context.Context, evt *entity.AppliedEvent) {
	m.applied.WithLabelValues(string(evt.Kind)).Inc()
	m.units.WithLabelValues(string(evt.Movement.Type)).Add(float64(evt.Movement.Quantity))
}

func (m *LedgerMetrics) EventRejected(_ context.Context, kind entity.EventKind, err error) {
	m.rejected.WithLabelValues(string(kind), string(domain.KindOf(err))).Inc()
}
