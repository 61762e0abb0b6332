package sales

import (
	"context"

	"github.com/superette-pos/backoffice/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa transacción. Garantiza la atomicidad del protocolo de venta:
// cabecera, líneas, descuento de stock y movimientos confirman juntos o no
// queda rastro de ninguno.
//
// La implementación debe reintentar conflictos transitorios de lock un
// número acotado de veces y devolver PersistenceError al agotarlos; los
// errores de dominio devueltos por fn nunca se reintentan.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
