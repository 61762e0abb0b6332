package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/superette-pos/backoffice/internal/application/catalog"
	"github.com/superette-pos/backoffice/internal/application/dto"
)

// ProductHandler maneja las peticiones del catálogo.
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create alta de producto (stock inicial siempre 0).
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p := in.ToEntity()
	if err := h.uc.Create(c.Context(), p); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(p))
}

// Update campos editables de un producto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	existing, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	existing.Barcode = in.Barcode
	existing.Name = in.Name
	existing.PriceGross = in.PriceGross
	existing.VatRate = in.VatRate
	existing.ReorderThreshold = in.ReorderThreshold
	existing.Active = in.Active
	if err := h.uc.Update(c.Context(), existing); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(existing))
}

// GetByID producto por id.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	p, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(p))
}

// List catálogo completo, o autocompletado cuando viene ?q=.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		list, err := h.uc.SearchByQuery(c.Context(), q, c.QueryInt("limit", 10))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.NewProductListResponse(list))
	}
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductListResponse(list))
}

// Lookup busca por código de barras exacto o nombre exacto (?key=).
// 404 si no hay match.
func (h *ProductHandler) Lookup(c *fiber.Ctx) error {
	p, err := h.uc.FindByBarcodeOrName(c.Context(), c.Query("key"))
	if err != nil {
		return respondError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.NewProductResponse(p))
}
