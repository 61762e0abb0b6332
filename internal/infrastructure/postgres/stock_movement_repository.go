package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/domain/entity"
	"github.com/superette-pos/backoffice/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre
// PostgreSQL (usable con pool o tx). Solo-anexado: no hay UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append registra un movimiento y asigna el id generado.
func (r *StockMovementRepo) Append(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movement (product_id, type, qty, movement_datetime, reference, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.ProductID, m.Type, m.Qty, m.Datetime, m.Reference, m.Note,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("append stock movement: %w", err)
	}
	return nil
}

// ListByProduct movimientos de un producto, más recientes primero, con
// rango de fechas opcional.
func (r *StockMovementRepo) ListByProduct(productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, type, qty, movement_datetime, reference, note
		FROM stock_movement WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND movement_datetime >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND movement_datetime <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY movement_datetime DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Qty,
			&m.Datetime, &m.Reference, &m.Note); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByProduct suma con signo del libro completo del producto. Contrastar
// con product.stock_qty: deben coincidir siempre entre transacciones.
func (r *StockMovementRepo) SumByProduct(productID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(qty), 0)
		FROM stock_movement WHERE product_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}
