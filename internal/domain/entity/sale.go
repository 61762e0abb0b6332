package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentMethodCash = "CASH"
	PaymentMethodCard = "CARD"
)

// Estados de una venta. Por ahora solo COMPLETED: no hay anulaciones
// ni devoluciones en el sistema.
const (
	SaleStatusCompleted = "COMPLETED"
)

// ValidPaymentMethod valida el método de pago recibido desde caja.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}

// Sale es la cabecera de una venta. Inmutable una vez confirmada: los
// totales quedan persistidos redondeados a 3 decimales (moneda de 3
// decimales, ej. TND).
type Sale struct {
	ID            int64
	Datetime      time.Time
	TotalGross    decimal.Decimal
	TotalVat      decimal.Decimal
	PaymentMethod string
	Status        string
}

// SaleItem es una línea de venta. Qty, UnitPriceGross y VatRate son
// instantáneas tomadas en el momento de la venta: cambios posteriores de
// precio en el catálogo no alteran los tickets históricos.
type SaleItem struct {
	ID             int64
	SaleID         int64
	ProductID      int64
	Qty            decimal.Decimal
	UnitPriceGross decimal.Decimal
	VatRate        decimal.Decimal
}

// SaleLineDetail es la vista de una línea para mostrar o imprimir: une la
// instantánea de la línea con el nombre y código de barras ACTUALES del
// producto (decisión heredada del sistema: el join no es una instantánea).
type SaleLineDetail struct {
	ProductID      int64
	ProductName    string
	Barcode        *string
	Qty            decimal.Decimal
	UnitPriceGross decimal.Decimal
	VatRate        decimal.Decimal
}

// LineGross devuelve el total bruto de la línea (qty * precio unitario).
func (d *SaleLineDetail) LineGross() decimal.Decimal {
	return d.Qty.Mul(d.UnitPriceGross)
}
