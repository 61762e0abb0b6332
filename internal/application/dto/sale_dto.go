package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/domain/entity"
)

// SaleItemRequest línea del carrito.
type SaleItemRequest struct {
	ProductID      int64           `json:"product_id"`
	Qty            decimal.Decimal `json:"qty"`
	UnitPriceGross decimal.Decimal `json:"unit_price_gross"`
	VatRate        decimal.Decimal `json:"vat_rate"`
}

// CreateSaleRequest cuerpo de POST /api/sales.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"`
}

// CreateSaleResponse id de la venta confirmada.
type CreateSaleResponse struct {
	SaleID int64 `json:"sale_id"`
}

// SaleResponse cabecera de venta. Los totales viajan formateados a 3
// decimales, igual que se persisten.
type SaleResponse struct {
	ID            int64     `json:"id"`
	Datetime      time.Time `json:"datetime"`
	TotalGross    string    `json:"total_gross"`
	TotalVat      string    `json:"total_vat"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
}

// NewSaleResponse mapea la entidad.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		Datetime:      s.Datetime,
		TotalGross:    s.TotalGross.StringFixed(3),
		TotalVat:      s.TotalVat.StringFixed(3),
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
	}
}

// SaleLineResponse línea para detalle de venta.
type SaleLineResponse struct {
	ProductID      int64   `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Barcode        *string `json:"barcode,omitempty"`
	Qty            string  `json:"qty"`
	UnitPriceGross string  `json:"unit_price_gross"`
	VatRate        string  `json:"vat_rate"`
	LineGross      string  `json:"line_gross"`
}

// NewSaleLineResponse mapea la vista de línea.
func NewSaleLineResponse(d *entity.SaleLineDetail) SaleLineResponse {
	return SaleLineResponse{
		ProductID:      d.ProductID,
		ProductName:    d.ProductName,
		Barcode:        d.Barcode,
		Qty:            d.Qty.String(),
		UnitPriceGross: d.UnitPriceGross.StringFixed(3),
		VatRate:        d.VatRate.String(),
		LineGross:      d.LineGross().StringFixed(3),
	}
}

// SaleDetailResponse cabecera + líneas.
type SaleDetailResponse struct {
	Sale  SaleResponse       `json:"sale"`
	Lines []SaleLineResponse `json:"lines"`
}
