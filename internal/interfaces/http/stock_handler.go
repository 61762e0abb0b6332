package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/superette-pos/backoffice/internal/application/dto"
	"github.com/superette-pos/backoffice/internal/application/stock"
)

// StockHandler maneja las peticiones del libro de stock.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// AddReceipt registra una entrada de mercadería.
func (h *StockHandler) AddReceipt(c *fiber.Ctx) error {
	var in dto.AddReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AddReceipt(c.Context(), in.ProductID, in.Qty, in.Reference, in.Note); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// LowStock productos en o bajo su umbral de reposición.
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.uc.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductListResponse(list))
}

// CurrentStock cantidad cacheada de un producto.
func (h *StockHandler) CurrentStock(c *fiber.Ctx) error {
	id, err := paramID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	qty, err := h.uc.CurrentStock(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product_id": id, "stock_qty": qty.String()})
}

// Movements historial de movimientos de un producto
// (?product_id=&from=&to=&limit=&offset=).
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	productID := int64(c.QueryInt("product_id"))
	if productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id requerido"})
	}
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro from inválido"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro to inválido"})
		}
		end := t.Add(24*time.Hour - time.Nanosecond) // inclusive hasta fin de día
		to = &end
	}
	list, err := h.uc.Movements(c.Context(), productID, from, to, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMovementResponse(m))
	}
	return c.JSON(out)
}

// Reconcile contrasta la cantidad cacheada con la suma del libro.
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	id, err := paramID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	rec, err := h.uc.Reconcile(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewReconciliationResponse(rec))
}
