package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/domain/entity"
	"github.com/superette-pos/backoffice/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, barcode, name, category_id, price_gross, vat_rate, stock_qty, reorder_threshold, cost_price, active`

// ProductRepo implementación de ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta el producto y asigna el id generado.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO product (barcode, name, category_id, price_gross, vat_rate, stock_qty, reorder_threshold, cost_price, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.Barcode, p.Name, p.CategoryID, p.PriceGross, p.VatRate,
		p.StockQty, p.ReorderThreshold, p.CostPrice, p.Active,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update modifica los campos editables. stock_qty y cost_price no se tocan
// acá: son propiedad del libro de stock.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE product
		SET barcode = $2, name = $3, category_id = $4, price_gross = $5,
		    vat_rate = $6, reorder_threshold = $7, active = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Barcode, p.Name, p.CategoryID, p.PriceGross,
		p.VatRate, p.ReorderThreshold, p.Active,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List catálogo completo ordenado por nombre.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// FindByBarcodeOrName código de barras exacto O nombre exacto, primera fila
// gana (sin ORDER BY: desempate por orden natural, ambigüedad heredada).
func (r *ProductRepo) FindByBarcodeOrName(key string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE barcode = $1 OR name = $1 LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find product by barcode or name: %w", err)
	}
	return p, nil
}

// SearchByQuery autocompletado: LOWER(name) LIKE (case-insensitive) y
// barcode LIKE (case-sensitive), solo activos, por nombre, max(1, limit)
// filas. La asimetría de mayúsculas es contrato observado.
func (r *ProductRepo) SearchByQuery(q string, limit int) ([]*entity.Product, error) {
	if limit < 1 {
		limit = 1
	}
	query := `
		SELECT ` + productColumns + `
		FROM product
		WHERE active AND (LOWER(name) LIKE $1 OR barcode LIKE $2)
		ORDER BY name
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), query,
		"%"+strings.ToLower(q)+"%", "%"+q+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// LowStock activos con stock_qty <= reorder_threshold, por stock ascendente
// y nombre como desempate estable.
func (r *ProductRepo) LowStock() ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM product
		WHERE active AND stock_qty <= reorder_threshold
		ORDER BY stock_qty ASC, name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("low stock query: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// StockForUpdate lee la cantidad cacheada bloqueando la fila
// (SELECT FOR UPDATE). Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) StockForUpdate(productID int64) (decimal.Decimal, bool, error) {
	query := `SELECT stock_qty FROM product WHERE id = $1 FOR UPDATE`
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("stock for update: %w", err)
	}
	return qty, true, nil
}

// DeductStock descuento condicional en una sola sentencia: la cantidad
// solo baja si el resultado queda >= 0. Cero filas afectadas significa
// stock insuficiente (o producto inexistente) y el llamador debe abortar
// la transacción completa.
func (r *ProductRepo) DeductStock(productID int64, qty decimal.Decimal) (bool, error) {
	query := `
		UPDATE product
		SET stock_qty = stock_qty - $2
		WHERE id = $1 AND stock_qty >= $2`
	cmd, err := r.q.Exec(context.Background(), query, productID, qty)
	if err != nil {
		return false, fmt.Errorf("deduct stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// AddStock incrementa la cantidad cacheada; false si el producto no existe.
func (r *ProductRepo) AddStock(productID int64, qty decimal.Decimal) (bool, error) {
	query := `UPDATE product SET stock_qty = stock_qty + $2 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, productID, qty)
	if err != nil {
		return false, fmt.Errorf("add stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Barcode, &p.Name, &p.CategoryID, &p.PriceGross,
		&p.VatRate, &p.StockQty, &p.ReorderThreshold, &p.CostPrice, &p.Active,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
