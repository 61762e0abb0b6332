package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/superette-pos/backoffice/internal/application/dto"
	"github.com/superette-pos/backoffice/internal/application/settings"
)

// SettingsHandler maneja la configuración de la tienda.
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get configuración vigente.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.uc.Load(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewSettingsResponse(s))
}

// Put guarda la configuración.
func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	var in dto.SettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s := in.ToEntity()
	if err := h.uc.Save(c.Context(), s); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewSettingsResponse(s))
}
