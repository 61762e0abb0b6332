// Package http expone el back-office por HTTP con Fiber. Capa fina de
// presentación: parseo, mapeo de errores de dominio a códigos y DTOs.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/superette-pos/backoffice/internal/application/dto"
	"github.com/superette-pos/backoffice/internal/domain"
)

// respondError mapea la taxonomía de errores del dominio a HTTP. El mensaje
// lleva el contexto (ids, cantidades) que el error ya trae.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrPersistence):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "PERSISTENCE", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
