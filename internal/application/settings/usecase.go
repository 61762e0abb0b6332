// Package settings gestiona la configuración de la tienda (fila única).
package settings

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/domain"
	"github.com/superette-pos/backoffice/internal/domain/entity"
	"github.com/superette-pos/backoffice/internal/domain/repository"
)

// UseCase carga y guarda la configuración.
type UseCase struct {
	repo repository.SettingsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.SettingsRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Load devuelve la configuración vigente, con moneda y tasa por defecto
// aplicadas si faltan.
func (uc *UseCase) Load(ctx context.Context) (*entity.Settings, error) {
	s, err := uc.repo.Load()
	if err != nil {
		return nil, err
	}
	if s.Currency == "" {
		s.Currency = entity.DefaultCurrency
	}
	if s.DefaultVatRate.IsZero() {
		s.DefaultVatRate = entity.DefaultVatRate
	}
	return s, nil
}

// Save persiste la configuración.
func (uc *UseCase) Save(ctx context.Context, s *entity.Settings) error {
	if s.DefaultVatRate.LessThan(decimal.Zero) {
		return &domain.ValidationError{Reason: "tasa de IVA por defecto no puede ser negativa"}
	}
	if s.Currency == "" {
		s.Currency = entity.DefaultCurrency
	}
	return uc.repo.Save(s)
}
