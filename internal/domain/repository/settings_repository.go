package repository

import "github.com/superette-pos/backoffice/internal/domain/entity"

// SettingsRepository puerto de la configuración de la tienda (fila única).
type SettingsRepository interface {
	Load() (*entity.Settings, error)
	Save(s *entity.Settings) error
}
