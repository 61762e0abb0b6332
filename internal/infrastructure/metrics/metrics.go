// Package metrics expone contadores Prometheus alimentados por los eventos
// de dominio: el colector se suscribe al despachador en el arranque y no
// toca los casos de uso.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/superette-pos/backoffice/internal/domain/event"
)

var _ event.Handler = (*Collector)(nil)

// Collector traduce eventos de dominio a métricas.
type Collector struct {
	salesCommitted prometheus.Counter
	salesRejected  *prometheus.CounterVec
	saleGrossTotal prometheus.Counter
	stockReceipts  prometheus.Counter
}

// NewCollector construye y registra los contadores en reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		salesCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sales_committed_total",
			Help: "Ventas confirmadas.",
		}),
		salesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_rejected_total",
			Help: "Ventas rechazadas, por motivo.",
		}, []string{"reason"}),
		saleGrossTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sale_gross_total",
			Help: "Suma de totales brutos confirmados (unidades de moneda).",
		}),
		stockReceipts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stock_receipts_total",
			Help: "Entradas de mercadería confirmadas.",
		}),
	}
	reg.MustRegister(c.salesCommitted, c.salesRejected, c.saleGrossTotal, c.stockReceipts)
	return c
}

// Handle implementa event.Handler.
func (c *Collector) Handle(_ context.Context, e event.Event) {
	switch ev := e.(type) {
	case event.SaleCommitted:
		c.salesCommitted.Inc()
		gross, _ := ev.TotalGross.Float64()
		c.saleGrossTotal.Add(gross)
	case event.SaleRejected:
		c.salesRejected.WithLabelValues(ev.Reason).Inc()
	case event.StockReceived:
		c.stockReceipts.Inc()
	}
}
