// Package event define las señales que el núcleo emite al confirmar
// mutaciones del libro de stock. Reemplaza los refrescos por callback entre
// controladores: las vistas (catálogo, stock, historial) y los colectores de
// métricas se suscriben aquí en vez de engancharse unas a otras.
package event

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Nombres de evento.
const (
	NameSaleCommitted = "sale.committed"
	NameSaleRejected  = "sale.rejected"
	NameStockReceived = "stock.received"
)

// Event evento de dominio.
type Event interface {
	EventName() string
}

// SaleCommitted se publica después del commit de una venta. SaleID es la
// señal de finalización: con él las vistas dependientes pueden recargar y
// la impresión de ticket puede leer una vista ya consistente.
type SaleCommitted struct {
	ID            string // identificador del evento
	SaleID        int64
	TotalGross    decimal.Decimal
	PaymentMethod string
	OccurredAt    time.Time
}

func (SaleCommitted) EventName() string { return NameSaleCommitted }

// SaleRejected se publica cuando una venta se rechaza sin dejar rastro.
type SaleRejected struct {
	ID         string
	Reason     string // validation, not_found, insufficient_stock, persistence
	OccurredAt time.Time
}

func (SaleRejected) EventName() string { return NameSaleRejected }

// StockReceived se publica después del commit de una entrada de mercadería.
type StockReceived struct {
	ID         string
	ProductID  int64
	Qty        decimal.Decimal
	Reference  string
	OccurredAt time.Time
}

func (StockReceived) EventName() string { return NameStockReceived }

// Handler consumidor de eventos.
type Handler interface {
	Handle(ctx context.Context, e Event)
}

// HandlerFunc adaptador función → Handler.
type HandlerFunc func(ctx context.Context, e Event)

// Handle implementa Handler.
func (f HandlerFunc) Handle(ctx context.Context, e Event) { f(ctx, e) }

// Publisher puerto de publicación que usan los casos de uso.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Dispatcher fan-out síncrono en proceso. Los handlers se registran en el
// arranque; Publish los invoca en orden de suscripción, fuera de la
// transacción ya confirmada.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewDispatcher construye el despachador.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registra un handler para todos los eventos.
func (d *Dispatcher) Subscribe(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, h)
}

// Publish entrega el evento a todos los handlers suscritos.
func (d *Dispatcher) Publish(ctx context.Context, e Event) {
	d.mu.RLock()
	hs := make([]Handler, len(d.handlers))
	copy(hs, d.handlers)
	d.mu.RUnlock()
	for _, h := range hs {
		h.Handle(ctx, e)
	}
}
