package repository

import (
	"time"

	"github.com/superette-pos/backoffice/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas.
type SaleRepository interface {
	// CreateSale inserta la cabecera y asigna s.ID con la clave generada.
	CreateSale(s *entity.Sale) error

	// AddItem inserta una línea; el orden de inserción preserva el orden
	// del carrito.
	AddItem(it *entity.SaleItem) error

	GetSale(id int64) (*entity.Sale, error)

	// ListSales ventas cuyo día cae dentro del rango [from, to] inclusive,
	// ordenadas por fecha descendente y a igual fecha por id descendente
	// (la creada más recientemente primero).
	ListSales(from, to time.Time) ([]*entity.Sale, error)

	// SaleDetails líneas de una venta en orden de carrito, unidas con el
	// nombre y código de barras actuales del producto.
	SaleDetails(saleID int64) ([]*entity.SaleLineDetail, error)
}
