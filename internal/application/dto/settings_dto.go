package dto

import (
	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/domain/entity"
)

// SettingsRequest cuerpo de PUT /api/settings.
type SettingsRequest struct {
	StoreName      string          `json:"store_name"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	TaxID          string          `json:"tax_id"`
	Currency       string          `json:"currency"`
	DefaultVatRate decimal.Decimal `json:"default_vat_rate"`
	ReceiptFooter  string          `json:"receipt_footer"`
}

// ToEntity construye la entidad.
func (r SettingsRequest) ToEntity() *entity.Settings {
	return &entity.Settings{
		StoreName:      r.StoreName,
		Address:        r.Address,
		Phone:          r.Phone,
		TaxID:          r.TaxID,
		Currency:       r.Currency,
		DefaultVatRate: r.DefaultVatRate,
		ReceiptFooter:  r.ReceiptFooter,
	}
}

// SettingsResponse configuración para presentación.
type SettingsResponse struct {
	StoreName      string `json:"store_name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	TaxID          string `json:"tax_id"`
	Currency       string `json:"currency"`
	DefaultVatRate string `json:"default_vat_rate"`
	ReceiptFooter  string `json:"receipt_footer"`
}

// NewSettingsResponse mapea la entidad.
func NewSettingsResponse(s *entity.Settings) SettingsResponse {
	return SettingsResponse{
		StoreName:      s.StoreName,
		Address:        s.Address,
		Phone:          s.Phone,
		TaxID:          s.TaxID,
		Currency:       s.CurrencyOrDefault(),
		DefaultVatRate: s.DefaultVatRate.String(),
		ReceiptFooter:  s.ReceiptFooter,
	}
}
