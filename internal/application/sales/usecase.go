package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/domain"
	"github.com/superette-pos/backoffice/internal/domain/entity"
	"github.com/superette-pos/backoffice/internal/domain/event"
	"github.com/superette-pos/backoffice/internal/domain/repository"
)

// CreateSaleUseCase coordina una venta: valida el carrito contra el stock
// vigente, calcula los totales y confirma cabecera + líneas + descuentos de
// stock + movimientos como una unidad atómica.
//
// El descuento de stock es un update condicional en una sola sentencia
// ("descontar solo si el resultado queda >= 0"): dos ventas concurrentes
// que compiten por el mismo producto se serializan en la fila y la segunda
// revalida contra el efecto de la primera. La suma de descuentos
// confirmados nunca deja stock_qty negativo.
type CreateSaleUseCase struct {
	txRunner TxRunner
	events   event.Publisher
}

// NewCreateSaleUseCase construye el coordinador.
func NewCreateSaleUseCase(txRunner TxRunner, events event.Publisher) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, events: events}
}

// CreateSaleInput entrada del coordinador.
type CreateSaleInput struct {
	Items         []CartItem
	PaymentMethod string
}

// CreateSale valida, calcula y confirma la venta. Devuelve el id generado;
// ese id es la señal para que las vistas dependientes recarguen.
//
// Las fallas se evalúan en orden de carrito y gana la primera; ninguna deja
// estado parcial (abort implica rollback completo).
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, input CreateSaleInput) (int64, error) {
	if err := uc.validate(input); err != nil {
		uc.publishRejected(ctx, err)
		return 0, err
	}

	totals := ComputeTotals(input.Items)
	now := time.Now().UTC()

	var saleID int64
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// Fase 1: existencia y disponibilidad, en orden de carrito, con la
		// fila bloqueada. La lectura y el descuento posterior ocurren dentro
		// de la misma transacción: misma instantánea, sin dobles viajes.
		for _, it := range input.Items {
			available, ok, err := productRepo.StockForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.NotFoundError{Entity: "producto", ID: it.ProductID}
			}
			if available.LessThan(it.Qty) {
				return &domain.InsufficientStockError{
					ProductID: it.ProductID,
					Available: available,
					Requested: it.Qty,
				}
			}
		}

		// Fase 2: cabecera con totales redondeados a 3 decimales.
		sale := &entity.Sale{
			Datetime:      now,
			TotalGross:    totals.Gross.Round(3),
			TotalVat:      totals.Vat.Round(3),
			PaymentMethod: input.PaymentMethod,
			Status:        entity.SaleStatusCompleted,
		}
		if err := saleRepo.CreateSale(sale); err != nil {
			return err
		}

		// Fase 3: por cada ítem, línea + descuento condicional + movimiento.
		for _, it := range input.Items {
			if err := saleRepo.AddItem(&entity.SaleItem{
				SaleID:         sale.ID,
				ProductID:      it.ProductID,
				Qty:            it.Qty,
				UnitPriceGross: it.UnitPriceGross,
				VatRate:        it.VatRate,
			}); err != nil {
				return err
			}

			ok, err := productRepo.DeductStock(it.ProductID, it.Qty)
			if err != nil {
				return err
			}
			if !ok {
				// El mismo producto repetido en el carrito puede agotar el
				// stock entre la fase 1 y esta sentencia.
				available, _, err := productRepo.StockForUpdate(it.ProductID)
				if err != nil {
					return err
				}
				return &domain.InsufficientStockError{
					ProductID: it.ProductID,
					Available: available,
					Requested: it.Qty,
				}
			}

			// Los asientos de venta llevan referencia fija "SALE"; los de
			// entrada llevan el remito del proveedor.
			saleRef := entity.MovementTypeSale
			if err := movementRepo.Append(&entity.StockMovement{
				ProductID: it.ProductID,
				Type:      entity.MovementTypeSale,
				Qty:       it.Qty.Neg(),
				Datetime:  now,
				Reference: &saleRef,
			}); err != nil {
				return err
			}
		}

		saleID = sale.ID
		return nil
	})
	if err != nil {
		uc.publishRejected(ctx, err)
		return 0, err
	}

	uc.events.Publish(ctx, event.SaleCommitted{
		ID:            uuid.New().String(),
		SaleID:        saleID,
		TotalGross:    totals.Gross.Round(3),
		PaymentMethod: input.PaymentMethod,
		OccurredAt:    now,
	})
	return saleID, nil
}

func (uc *CreateSaleUseCase) validate(input CreateSaleInput) error {
	if len(input.Items) == 0 {
		return &domain.ValidationError{Reason: "el carrito está vacío"}
	}
	if !entity.ValidPaymentMethod(input.PaymentMethod) {
		return &domain.ValidationError{Reason: "método de pago inválido: " + input.PaymentMethod}
	}
	for i, it := range input.Items {
		if !it.Qty.GreaterThan(decimal.Zero) {
			return &domain.ValidationError{
				Reason: fmt.Sprintf("cantidad debe ser > 0 (línea %d, producto id=%d)", i+1, it.ProductID),
			}
		}
	}
	return nil
}

func (uc *CreateSaleUseCase) publishRejected(ctx context.Context, err error) {
	uc.events.Publish(ctx, event.SaleRejected{
		ID:         uuid.New().String(),
		Reason:     rejectionReason(err),
		OccurredAt: time.Now().UTC(),
	})
}

// rejectionReason clasifica el error para métricas y logs.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "persistence"
	}
}
