package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/superette-pos/backoffice/internal/application/sales"
	"github.com/superette-pos/backoffice/internal/application/stock"
	"github.com/superette-pos/backoffice/internal/domain"
	"github.com/superette-pos/backoffice/internal/domain/repository"
)

// Compile checks: el mismo runner sirve al coordinador de ventas y al
// libro de stock.
var (
	_ sales.TxRunner = (*TxRunner)(nil)
	_ stock.TxRunner = (*TxRunner)(nil)
)

// txMaxAttempts intentos totales ante conflictos transitorios de lock.
const txMaxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// reintento acotado (backoff exponencial) ante serialization_failure o
// deadlock. Agotados los intentos, devuelve PersistenceError.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia la transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los errores de dominio devueltos por fn cortan el
// reintento y se propagan tal cual.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	op := func() error {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if isTransientTxError(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 25 * time.Millisecond
	policy.MaxInterval = 250 * time.Millisecond

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, txMaxAttempts-1), ctx))
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	return &domain.PersistenceError{Op: "transacción", Err: err}
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	saleRepo := NewSaleRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(productRepo, saleRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// isDomainError distingue los rechazos del negocio (se propagan intactos)
// de las fallas de infraestructura (se envuelven en PersistenceError).
func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInsufficientStock)
}
