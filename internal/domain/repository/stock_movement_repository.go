package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/domain/entity"
)

// StockMovementRepository puerto del libro de movimientos (solo-anexado).
type StockMovementRepository interface {
	// Append registra un movimiento. No existe update ni delete.
	Append(m *entity.StockMovement) error

	// ListByProduct movimientos de un producto, más recientes primero,
	// con rango de fechas opcional.
	ListByProduct(productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)

	// SumByProduct suma con signo de todos los movimientos del producto.
	// Debe coincidir con Product.StockQty; se usa para conciliación.
	SumByProduct(productID int64) (decimal.Decimal, error)
}
