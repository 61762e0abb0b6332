package entity

import "github.com/shopspring/decimal"

// Valores por defecto de la fila de configuración.
const (
	DefaultCurrency = "TND"
)

// DefaultVatRate tasa de IVA por defecto (19%).
var DefaultVatRate = decimal.NewFromInt(19)

// Settings es la configuración de la tienda: fila única (id = 1). La moneda
// y la tasa de IVA por defecto se usan solo para presentación, nunca para
// el cálculo de totales (esos usan la instantánea de cada línea).
type Settings struct {
	StoreName      string
	Address        string
	Phone          string
	TaxID          string
	Currency       string
	DefaultVatRate decimal.Decimal
	ReceiptFooter  string
}

// CurrencyOrDefault devuelve la moneda configurada o TND si está vacía.
func (s *Settings) CurrencyOrDefault() string {
	if s.Currency == "" {
		return DefaultCurrency
	}
	return s.Currency
}
