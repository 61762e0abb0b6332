package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/superette-pos/backoffice/internal/domain/entity"
	"github.com/superette-pos/backoffice/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo configuración de la tienda: fila única con id = 1, sembrada
// por el esquema.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Load lee la fila única. Si por algún motivo no existe, devuelve los
// valores por defecto en vez de fallar.
func (r *SettingsRepo) Load() (*entity.Settings, error) {
	query := `
		SELECT store_name, address, phone, tax_id, currency, default_vat_rate, receipt_footer
		FROM settings WHERE id = 1`
	var s entity.Settings
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.StoreName, &s.Address, &s.Phone, &s.TaxID,
		&s.Currency, &s.DefaultVatRate, &s.ReceiptFooter,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Settings{
				Currency:       entity.DefaultCurrency,
				DefaultVatRate: entity.DefaultVatRate,
			}, nil
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &s, nil
}

// Save actualiza la fila única (upsert por si el esquema no la sembró).
func (r *SettingsRepo) Save(s *entity.Settings) error {
	query := `
		INSERT INTO settings (id, store_name, address, phone, tax_id, currency, default_vat_rate, receipt_footer)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			store_name = EXCLUDED.store_name,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			tax_id = EXCLUDED.tax_id,
			currency = EXCLUDED.currency,
			default_vat_rate = EXCLUDED.default_vat_rate,
			receipt_footer = EXCLUDED.receipt_footer`
	_, err := r.q.Exec(context.Background(), query,
		s.StoreName, s.Address, s.Phone, s.TaxID,
		s.Currency, s.DefaultVatRate, s.ReceiptFooter,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
