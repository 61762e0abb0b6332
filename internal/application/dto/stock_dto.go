package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/superette-pos/backoffice/internal/application/stock"
	"github.com/superette-pos/backoffice/internal/domain/entity"
)

// AddReceiptRequest cuerpo de POST /api/stock/receipts.
type AddReceiptRequest struct {
	ProductID int64           `json:"product_id"`
	Qty       decimal.Decimal `json:"qty"`
	Reference string          `json:"reference"`
	Note      string          `json:"note"`
}

// MovementResponse asiento del libro de movimientos.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Type      string    `json:"type"`
	Qty       string    `json:"qty"`
	Datetime  time.Time `json:"datetime"`
	Reference *string   `json:"reference,omitempty"`
	Note      *string   `json:"note,omitempty"`
}

// NewMovementResponse mapea la entidad.
func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Qty:       m.Qty.String(),
		Datetime:  m.Datetime,
		Reference: m.Reference,
		Note:      m.Note,
	}
}

// ReconciliationResponse resultado de conciliar cacheado vs libro.
type ReconciliationResponse struct {
	ProductID  int64  `json:"product_id"`
	CachedQty  string `json:"cached_qty"`
	LedgerSum  string `json:"ledger_sum"`
	Consistent bool   `json:"consistent"`
}

// NewReconciliationResponse mapea el resultado.
func NewReconciliationResponse(r *stock.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ProductID:  r.ProductID,
		CachedQty:  r.CachedQty.String(),
		LedgerSum:  r.LedgerSum.String(),
		Consistent: r.Consistent,
	}
}
