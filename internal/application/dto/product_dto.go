package dto

import (
	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/domain/entity"
)

// CreateProductRequest alta de producto. El stock inicial no se acepta por
// acá: entra con una recepción de mercadería.
type CreateProductRequest struct {
	Barcode          *string         `json:"barcode"`
	Name             string          `json:"name"`
	CategoryID       *int64          `json:"category_id"`
	PriceGross       decimal.Decimal `json:"price_gross"`
	VatRate          decimal.Decimal `json:"vat_rate"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	CostPrice        *decimal.Decimal `json:"cost_price"`
	Active           *bool           `json:"active"`
}

// ToEntity construye la entidad (activo por defecto).
func (r CreateProductRequest) ToEntity() *entity.Product {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &entity.Product{
		Barcode:          r.Barcode,
		Name:             r.Name,
		CategoryID:       r.CategoryID,
		PriceGross:       r.PriceGross,
		VatRate:          r.VatRate,
		ReorderThreshold: r.ReorderThreshold,
		CostPrice:        r.CostPrice,
		Active:           active,
	}
}

// UpdateProductRequest campos editables de un producto.
type UpdateProductRequest struct {
	Barcode          *string         `json:"barcode"`
	Name             string          `json:"name"`
	PriceGross       decimal.Decimal `json:"price_gross"`
	VatRate          decimal.Decimal `json:"vat_rate"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	Active           bool            `json:"active"`
}

// ProductResponse producto para presentación.
type ProductResponse struct {
	ID               int64   `json:"id"`
	Barcode          *string `json:"barcode,omitempty"`
	Name             string  `json:"name"`
	CategoryID       *int64  `json:"category_id,omitempty"`
	PriceGross       string  `json:"price_gross"`
	VatRate          string  `json:"vat_rate"`
	StockQty         string  `json:"stock_qty"`
	ReorderThreshold string  `json:"reorder_threshold"`
	CostPrice        *string `json:"cost_price,omitempty"`
	Active           bool    `json:"active"`
}

// NewProductResponse mapea la entidad.
func NewProductResponse(p *entity.Product) ProductResponse {
	out := ProductResponse{
		ID:               p.ID,
		Barcode:          p.Barcode,
		Name:             p.Name,
		CategoryID:       p.CategoryID,
		PriceGross:       p.PriceGross.StringFixed(3),
		VatRate:          p.VatRate.String(),
		StockQty:         p.StockQty.String(),
		ReorderThreshold: p.ReorderThreshold.String(),
		Active:           p.Active,
	}
	if p.CostPrice != nil {
		s := p.CostPrice.StringFixed(3)
		out.CostPrice = &s
	}
	return out
}

// NewProductListResponse mapea una lista de productos.
func NewProductListResponse(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}
