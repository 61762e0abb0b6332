package sales

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// CartItem línea del carrito tal como llega de caja. UnitPriceGross y
// VatRate viajan con el ítem porque la venta persiste instantáneas, no
// referencias al precio vigente del catálogo.
type CartItem struct {
	ProductID      int64
	Qty            decimal.Decimal
	UnitPriceGross decimal.Decimal
	VatRate        decimal.Decimal
}

// LineGross total bruto de la línea.
func (it CartItem) LineGross() decimal.Decimal {
	return it.Qty.Mul(it.UnitPriceGross)
}

// Totals totales acumulados de un carrito, a precisión completa.
type Totals struct {
	Gross decimal.Decimal
	Vat   decimal.Decimal
}

// ComputeTotals calcula los totales con el modelo de precios IVA-incluido:
//
//	lineGross = qty * unitPriceGross
//	unitNet   = unitPriceGross / (1 + vatRate/100)
//	lineVat   = qty * (unitPriceGross - unitNet)
//
// Se acumula a precisión completa y NO se redondea por línea; el redondeo a
// 3 decimales ocurre una sola vez al persistir/mostrar. Cambiar ese orden
// altera los totales esperados.
func ComputeTotals(items []CartItem) Totals {
	gross := decimal.Zero
	vat := decimal.Zero
	for _, it := range items {
		gross = gross.Add(it.LineGross())
		unitNet := it.UnitPriceGross.Div(one.Add(it.VatRate.Div(hundred)))
		vat = vat.Add(it.Qty.Mul(it.UnitPriceGross.Sub(unitNet)))
	}
	return Totals{Gross: gross, Vat: vat}
}
