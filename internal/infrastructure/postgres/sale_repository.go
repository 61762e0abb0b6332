package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/superette-pos/backoffice/internal/domain/entity"
	"github.com/superette-pos/backoffice/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con
// pool o tx). Las escrituras solo llegan acá desde el coordinador, dentro
// de su transacción.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// CreateSale inserta la cabecera y asigna s.ID.
func (r *SaleRepo) CreateSale(s *entity.Sale) error {
	query := `
		INSERT INTO sale (sale_datetime, total_gross, total_vat, payment_method, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		s.Datetime, s.TotalGross, s.TotalVat, s.PaymentMethod, s.Status,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// AddItem inserta una línea de venta (instantánea de precio e IVA).
func (r *SaleRepo) AddItem(it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_item (sale_id, product_id, qty, unit_price_gross, vat_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		it.SaleID, it.ProductID, it.Qty, it.UnitPriceGross, it.VatRate,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetSale obtiene la cabecera; (nil, nil) si no existe.
func (r *SaleRepo) GetSale(id int64) (*entity.Sale, error) {
	query := `
		SELECT id, sale_datetime, total_gross, total_vat, payment_method, status
		FROM sale WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Datetime, &s.TotalGross, &s.TotalVat, &s.PaymentMethod, &s.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// ListSales rango inclusivo sobre el día de la venta, fecha descendente y
// a igual fecha id descendente (la creada más recientemente primero).
func (r *SaleRepo) ListSales(from, to time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT id, sale_datetime, total_gross, total_vat, payment_method, status
		FROM sale
		WHERE sale_datetime::date BETWEEN $1::date AND $2::date
		ORDER BY sale_datetime DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Datetime, &s.TotalGross, &s.TotalVat,
			&s.PaymentMethod, &s.Status); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SaleDetails líneas en orden de inserción (= orden de carrito), unidas al
// nombre y código de barras ACTUALES del producto.
func (r *SaleRepo) SaleDetails(saleID int64) ([]*entity.SaleLineDetail, error) {
	query := `
		SELECT si.product_id, p.name, p.barcode, si.qty, si.unit_price_gross, si.vat_rate
		FROM sale_item si
		JOIN product p ON p.id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY si.id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("sale details: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleLineDetail
	for rows.Next() {
		var d entity.SaleLineDetail
		if err := rows.Scan(&d.ProductID, &d.ProductName, &d.Barcode,
			&d.Qty, &d.UnitPriceGross, &d.VatRate); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
