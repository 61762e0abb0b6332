// Package catalog expone la gestión del catálogo de productos para la
// presentación (formularios, autocompletado, lookup de caja).
package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/domain"
	"github.com/superette-pos/backoffice/internal/domain/entity"
	"github.com/superette-pos/backoffice/internal/domain/repository"
)

// UseCase operaciones del catálogo.
type UseCase struct {
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository) *UseCase {
	return &UseCase{productRepo: productRepo}
}

// Create da de alta un producto. El stock inicial es siempre 0: la cantidad
// pertenece al libro de stock y entra con una entrada RECEIPT, nunca por
// el formulario de alta.
func (uc *UseCase) Create(ctx context.Context, p *entity.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return &domain.ValidationError{Reason: "nombre requerido"}
	}
	if p.PriceGross.LessThan(decimal.Zero) {
		return &domain.ValidationError{Reason: "precio no puede ser negativo"}
	}
	if p.VatRate.LessThan(decimal.Zero) {
		return &domain.ValidationError{Reason: "tasa de IVA no puede ser negativa"}
	}
	if p.ReorderThreshold.LessThan(decimal.Zero) {
		return &domain.ValidationError{Reason: "umbral de reposición no puede ser negativo"}
	}
	p.StockQty = decimal.Zero
	return uc.productRepo.Create(p)
}

// Update modifica los campos editables (barcode, nombre, precio, IVA,
// umbral, activo). No toca stock_qty ni cost_price: el primero lo escribe
// el libro de stock; el segundo, la recepción de mercadería.
func (uc *UseCase) Update(ctx context.Context, p *entity.Product) error {
	if p.ID == 0 {
		return &domain.ValidationError{Reason: "id de producto requerido"}
	}
	if strings.TrimSpace(p.Name) == "" {
		return &domain.ValidationError{Reason: "nombre requerido"}
	}
	if p.PriceGross.LessThan(decimal.Zero) {
		return &domain.ValidationError{Reason: "precio no puede ser negativo"}
	}
	existing, err := uc.productRepo.GetByID(p.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &domain.NotFoundError{Entity: "producto", ID: p.ID}
	}
	return uc.productRepo.Update(p)
}

// GetByID obtiene un producto; NotFoundError si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: id}
	}
	return p, nil
}

// List catálogo completo ordenado por nombre.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.List()
}

// FindByBarcodeOrName lookup rápido de caja: código de barras exacto O
// nombre exacto, gana la primera fila. Devuelve (nil, nil) si no hay match.
func (uc *UseCase) FindByBarcodeOrName(ctx context.Context, key string) (*entity.Product, error) {
	if strings.TrimSpace(key) == "" {
		return nil, &domain.ValidationError{Reason: "clave de búsqueda vacía"}
	}
	return uc.productRepo.FindByBarcodeOrName(key)
}

// SearchByQuery autocompletado acotado a max(1, limit) filas.
func (uc *UseCase) SearchByQuery(ctx context.Context, q string, limit int) ([]*entity.Product, error) {
	return uc.productRepo.SearchByQuery(q, limit)
}
