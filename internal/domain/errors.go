// Package domain define las entidades, los puertos de persistencia y la
// taxonomía de errores del back-office (sin dependencias de infraestructura).
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Centinelas para clasificar con errors.Is. Los tipos de abajo llevan el
// contexto (ids, cantidades) y desenvuelven hacia estos.
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("error de persistencia")
)

// ValidationError entrada malformada (carrito vacío, cantidad no positiva,
// método de pago desconocido). Recuperable por el llamador; nunca deja
// estado parcial.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "entrada inválida: " + e.Reason }
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError el recurso referenciado no existe. Aborta la operación
// completa antes de cualquier mutación.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s id=%d no encontrado", e.Entity, e.ID)
}
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError el stock disponible no alcanza para la cantidad
// pedida. Aborta la venta completa; se muestra al operador, no se reintenta.
type InsufficientStockError struct {
	ProductID int64
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto id=%d: hay %s, se piden %s",
		e.ProductID, e.Available.String(), e.Requested.String())
}
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// PersistenceError falla de almacenamiento, incluida contención transitoria
// de locks ya agotados los reintentos.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistencia: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrPersistence) además del desenvuelto interno.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
