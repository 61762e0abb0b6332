package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/superette-pos/backoffice/internal/application/dto"
	"github.com/superette-pos/backoffice/internal/application/reporting"
	"github.com/superette-pos/backoffice/internal/application/sales"
	"github.com/superette-pos/backoffice/internal/infrastructure/pdf"
)

// SaleHandler maneja las peticiones de venta e historial.
type SaleHandler struct {
	createSale *sales.CreateSaleUseCase
	reports    *reporting.UseCase
	receipts   *pdf.ReceiptGenerator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(createSale *sales.CreateSaleUseCase, reports *reporting.UseCase, receipts *pdf.ReceiptGenerator) *SaleHandler {
	return &SaleHandler{createSale: createSale, reports: reports, receipts: receipts}
}

// Create confirma una venta. 201 con el id; 400/404/409 según la falla.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]sales.CartItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.CartItem{
			ProductID:      it.ProductID,
			Qty:            it.Qty,
			UnitPriceGross: it.UnitPriceGross,
			VatRate:        it.VatRate,
		})
	}
	saleID, err := h.createSale.CreateSale(c.Context(), sales.CreateSaleInput{
		Items:         items,
		PaymentMethod: in.PaymentMethod,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateSaleResponse{SaleID: saleID})
}

// List historial por rango de fechas inclusivo (?from=YYYY-MM-DD&to=...);
// sin parámetros lista el día de hoy.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	now := time.Now().UTC()
	from, err := parseDateQuery(c, "from", now)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	to, err := parseDateQuery(c, "to", now)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	list, err := h.reports.ListSales(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSaleResponse(s))
	}
	return c.JSON(out)
}

// GetByID cabecera + líneas de una venta.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	sale, err := h.reports.GetSale(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	lines, err := h.reports.SaleDetails(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.SaleDetailResponse{Sale: dto.NewSaleResponse(sale)}
	for _, d := range lines {
		out.Lines = append(out.Lines, dto.NewSaleLineResponse(d))
	}
	return c.JSON(out)
}

// Receipt ticket de la venta en PDF.
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	view, err := h.reports.ReceiptData(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, err := h.receipts.GenerateReceiptPDF(view)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="receipt_%d.pdf"`, id))
	return c.Send(pdfBytes)
}

// paramID parsea un path param numérico.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("parámetro %s inválido", name)
	}
	return id, nil
}

// parseDateQuery parsea un query param YYYY-MM-DD con valor por defecto.
func parseDateQuery(c *fiber.Ctx, name string, def time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parámetro %s inválido: se espera YYYY-MM-DD", name)
	}
	return t, nil
}
