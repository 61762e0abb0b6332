// Package reporting implementa el historial de ventas: proyección de solo
// lectura aguas abajo del libro de movimientos, sin retroalimentación hacia
// el coordinador.
package reporting

import (
	"context"
	"time"

	"github.com/superette-pos/backoffice/internal/domain"
	"github.com/superette-pos/backoffice/internal/domain/entity"
	"github.com/superette-pos/backoffice/internal/domain/repository"
)

// UseCase consultas de historial y vista de ticket.
type UseCase struct {
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(saleRepo repository.SaleRepository, settingsRepo repository.SettingsRepository) *UseCase {
	return &UseCase{saleRepo: saleRepo, settingsRepo: settingsRepo}
}

// ListSales ventas con fecha dentro de [from, to] inclusive, más recientes
// primero; a igual fecha, id descendente.
func (uc *UseCase) ListSales(ctx context.Context, from, to time.Time) ([]*entity.Sale, error) {
	if to.Before(from) {
		return nil, &domain.ValidationError{Reason: "rango de fechas invertido"}
	}
	return uc.saleRepo.ListSales(from, to)
}

// GetSale cabecera de una venta; NotFoundError si no existe.
func (uc *UseCase) GetSale(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := uc.saleRepo.GetSale(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &domain.NotFoundError{Entity: "venta", ID: id}
	}
	return s, nil
}

// SaleDetails líneas de la venta en orden de carrito, con nombre y código
// de barras actuales del producto. Lectura idempotente: sin escrituras de
// por medio devuelve siempre lo mismo.
func (uc *UseCase) SaleDetails(ctx context.Context, saleID int64) ([]*entity.SaleLineDetail, error) {
	if _, err := uc.GetSale(ctx, saleID); err != nil {
		return nil, err
	}
	return uc.saleRepo.SaleDetails(saleID)
}

// ReceiptView datos suficientes para renderizar un ticket. Consistente con
// la venta confirmada en cuanto CreateSale retornó.
type ReceiptView struct {
	Settings *entity.Settings
	Sale     *entity.Sale
	Lines    []*entity.SaleLineDetail
}

// ReceiptData arma la vista de ticket de una venta.
func (uc *UseCase) ReceiptData(ctx context.Context, saleID int64) (*ReceiptView, error) {
	sale, err := uc.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.saleRepo.SaleDetails(saleID)
	if err != nil {
		return nil, err
	}
	settings, err := uc.settingsRepo.Load()
	if err != nil {
		return nil, err
	}
	return &ReceiptView{Settings: settings, Sale: sale, Lines: lines}, nil
}
