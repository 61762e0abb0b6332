// Package stock implementa el libro de stock: entradas de mercadería,
// consulta de cantidad vigente, alerta de reposición y conciliación del
// cacheado contra el libro de movimientos.
package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/domain"
	"github.com/superette-pos/backoffice/internal/domain/entity"
	"github.com/superette-pos/backoffice/internal/domain/event"
	"github.com/superette-pos/backoffice/internal/domain/repository"
)

// UseCase operaciones del libro de stock.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	events       event.Publisher
}

// NewUseCase construye el caso de uso. productRepo y movementRepo son los
// adaptadores atados al pool (lecturas fuera de transacción); las
// mutaciones pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	events event.Publisher,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		events:       events,
	}
}

// AddReceipt registra una entrada de mercadería: incrementa stock_qty y
// anexa un movimiento RECEIPT con +qty, en la misma transacción. Si
// reference llega vacío se genera uno (uuid) para poder rastrear el asiento.
func (uc *UseCase) AddReceipt(ctx context.Context, productID int64, qty decimal.Decimal, reference, note string) error {
	if !qty.GreaterThan(decimal.Zero) {
		return &domain.ValidationError{Reason: "cantidad debe ser > 0"}
	}
	if reference == "" {
		reference = uuid.New().String()
	}
	now := time.Now().UTC()

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		ok, err := productRepo.AddStock(productID, qty)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.NotFoundError{Entity: "producto", ID: productID}
		}
		m := &entity.StockMovement{
			ProductID: productID,
			Type:      entity.MovementTypeReceipt,
			Qty:       qty,
			Datetime:  now,
			Reference: &reference,
		}
		if note != "" {
			m.Note = &note
		}
		return movementRepo.Append(m)
	})
	if err != nil {
		return err
	}

	uc.events.Publish(ctx, event.StockReceived{
		ID:         uuid.New().String(),
		ProductID:  productID,
		Qty:        qty,
		Reference:  reference,
		OccurredAt: now,
	})
	return nil
}

// CurrentStock devuelve la cantidad cacheada del producto. Lectura suelta
// para presentación; el coordinador de ventas nunca la usa: lee dentro de
// su propia transacción.
func (uc *UseCase) CurrentStock(ctx context.Context, productID int64) (decimal.Decimal, error) {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return decimal.Zero, err
	}
	if p == nil {
		return decimal.Zero, &domain.NotFoundError{Entity: "producto", ID: productID}
	}
	return p.StockQty, nil
}

// LowStock productos activos en o por debajo de su umbral de reposición,
// por stock ascendente y nombre. Lectura sin aislamiento especial:
// consistencia eventual frente a transacciones en vuelo es aceptable.
func (uc *UseCase) LowStock(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.LowStock()
}

// Movements historial de movimientos de un producto, más recientes primero.
func (uc *UseCase) Movements(ctx context.Context, productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movementRepo.ListByProduct(productID, from, to, limit, offset)
}

// Reconciliation resultado de contrastar la cantidad cacheada con la suma
// del libro de movimientos.
type Reconciliation struct {
	ProductID  int64
	CachedQty  decimal.Decimal
	LedgerSum  decimal.Decimal
	Consistent bool
}

// Reconcile verifica el invariante central: stock_qty == Σ movimientos.
// Diagnóstico de solo lectura; no corrige nada.
func (uc *UseCase) Reconcile(ctx context.Context, productID int64) (*Reconciliation, error) {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: productID}
	}
	sum, err := uc.movementRepo.SumByProduct(productID)
	if err != nil {
		return nil, err
	}
	return &Reconciliation{
		ProductID:  productID,
		CachedQty:  p.StockQty,
		LedgerSum:  sum,
		Consistent: p.StockQty.Equal(sum),
	}, nil
}
