package entity

import "github.com/shopspring/decimal"

// Product representa un artículo del catálogo de la tienda.
//
// StockQty es la cantidad cacheada: su valor debe coincidir siempre con la
// suma de los movimientos del producto en stock_movement (positivos los
// RECEIPT, negativos los SALE). Solo las operaciones del libro de stock
// pueden modificarla; nunca se toca desde la edición del catálogo.
type Product struct {
	ID               int64
	Barcode          *string
	Name             string
	CategoryID       *int64
	PriceGross       decimal.Decimal // precio unitario con IVA incluido
	VatRate          decimal.Decimal // porcentaje, ej. 19.0
	StockQty         decimal.Decimal
	ReorderThreshold decimal.Decimal
	CostPrice        *decimal.Decimal
	Active           bool
}

// BelowReorderLevel indica si el producto está en o por debajo de su umbral
// de reposición (el umbral inclusive cuenta como bajo stock).
func (p *Product) BelowReorderLevel() bool {
	return p.StockQty.Cmp(p.ReorderThreshold) <= 0
}
