package repository

import (
	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/domain/entity"
)

// ProductRepository puerto de persistencia del catálogo de productos.
// Las implementaciones devuelven (nil, nil) cuando no hay fila.
//
// StockForUpdate, DeductStock y AddStock existen para el libro de stock:
// solo deben invocarse dentro de una transacción (vía TxRunner), nunca
// sueltas, para que la lectura y la escritura vean la misma instantánea.
type ProductRepository interface {
	Create(p *entity.Product) error
	Update(p *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	List() ([]*entity.Product, error)

	// FindByBarcodeOrName busca por código de barras exacto O nombre exacto.
	// Gana la primera fila; no hay desempate definido más allá del orden
	// natural (ambigüedad heredada del sistema).
	FindByBarcodeOrName(key string) (*entity.Product, error)

	// SearchByQuery autocompletado: substring case-insensitive sobre el
	// nombre y case-sensitive sobre el código de barras, solo activos,
	// ordenado por nombre, acotado a max(1, limit) filas. La asimetría de
	// mayúsculas es contrato observado; no "corregir".
	SearchByQuery(q string, limit int) ([]*entity.Product, error)

	// LowStock productos activos con stock_qty <= reorder_threshold,
	// ordenados por stock_qty ascendente y nombre como desempate.
	LowStock() ([]*entity.Product, error)

	// StockForUpdate lee la cantidad cacheada bloqueando la fila
	// (SELECT FOR UPDATE). ok=false si el producto no existe.
	StockForUpdate(productID int64) (qty decimal.Decimal, ok bool, err error)

	// DeductStock descuenta qty solo si la cantidad resultante queda >= 0
	// (update condicional, una sola sentencia). ok=false cuando la condición
	// no se cumple o el producto no existe.
	DeductStock(productID int64, qty decimal.Decimal) (ok bool, err error)

	// AddStock incrementa la cantidad cacheada. ok=false si el producto
	// no existe.
	AddStock(productID int64, qty decimal.Decimal) (ok bool, err error)
}
