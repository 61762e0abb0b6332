package stock

import (
	"context"

	"github.com/superette-pos/backoffice/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD (misma garantía que
// en sales: incremento y asiento del movimiento juntos, o nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
