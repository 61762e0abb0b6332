package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeReceipt = "RECEIPT" // entrada de mercadería (qty > 0)
	MovementTypeSale    = "SALE"    // salida por venta (qty < 0)
)

// StockMovement es un registro del libro de movimientos, solo-anexado:
// nunca se actualiza ni se borra. Es la fuente de verdad para conciliar
// Product.StockQty.
type StockMovement struct {
	ID        int64
	ProductID int64
	Type      string
	Qty       decimal.Decimal // con signo: + RECEIPT, - SALE
	Datetime  time.Time
	Reference *string // ej. número de remito del proveedor
	Note      *string
}
