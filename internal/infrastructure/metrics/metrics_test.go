package metrics_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superette-pos/backoffice/internal/domain/event"
	"github.com/superette-pos/backoffice/internal/infrastructure/metrics"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, m := range mf.GetMetric() {
			for k, v := range labels {
				if !hasLabel(m, k, v) {
					continue metric
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func hasLabel(m *dto.Metric, key, value string) bool {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == key && lp.GetValue() == value {
			return true
		}
	}
	return false
}

func TestCollector_CuentaVentasConfirmadas(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.Handle(context.Background(), event.SaleCommitted{
		SaleID:        1,
		TotalGross:    decimal.RequireFromString("8.200"),
		PaymentMethod: "CASH",
	})
	c.Handle(context.Background(), event.SaleCommitted{
		SaleID:        2,
		TotalGross:    decimal.RequireFromString("1.800"),
		PaymentMethod: "CARD",
	})

	assert.Equal(t, 2.0, counterValue(t, reg, "sales_committed_total", nil))
	assert.InDelta(t, 10.0, counterValue(t, reg, "sale_gross_total", nil), 0.001)
}

func TestCollector_CuentaRechazosPorMotivo(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.Handle(context.Background(), event.SaleRejected{Reason: "insufficient_stock"})
	c.Handle(context.Background(), event.SaleRejected{Reason: "insufficient_stock"})
	c.Handle(context.Background(), event.SaleRejected{Reason: "validation"})

	assert.Equal(t, 2.0, counterValue(t, reg, "sales_rejected_total",
		map[string]string{"reason": "insufficient_stock"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "sales_rejected_total",
		map[string]string{"reason": "validation"}))
}

func TestCollector_CuentaEntradasDeStock(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.Handle(context.Background(), event.StockReceived{
		ProductID: 1,
		Qty:       decimal.NewFromInt(10),
	})

	assert.Equal(t, 1.0, counterValue(t, reg, "stock_receipts_total", nil))
}
