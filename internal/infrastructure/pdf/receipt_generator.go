// Package pdf genera el ticket de venta en PDF con Maroto v2.
//
// Layout A4:
//
//	┌──────────────────────────────────────────────┐
//	│  Nombre de la tienda                          │
//	│  Dirección / Tel / Identificación fiscal      │
//	│  ─────────────────────────────────────────── │
//	│  Venta #id — fecha — método de pago           │
//	│  TABLA: Artículo | Cant | Unit | Total        │
//	│  ─────────────────────────────────────────── │
//	│  Total IVA / TOTAL                            │
//	│  Pie de ticket                                │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/superette-pos/backoffice/internal/application/reporting"
	"github.com/superette-pos/backoffice/internal/domain/entity"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// ReceiptGenerator renderiza tickets usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF del ticket y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(view *reporting.ReceiptView) ([]byte, error) {
	settings := view.Settings
	storeName := settings.StoreName
	if storeName == "" {
		storeName = "Superette POS"
	}
	currency := settings.CurrencyOrDefault()

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Ticket venta #%d", view.Sale.ID), true).
		WithAuthor(storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(storeName, settings))
	m.AddRows(line.NewRow(1, props.Line{Thickness: 0.5}))
	m.AddRows(saleInfoRow(view.Sale))
	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(currency, view.Lines) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Thickness: 0.3}))
	m.AddRows(totalsRows(currency, view.Sale)...)
	if settings.ReceiptFooter != "" {
		m.AddRows(footerRow(settings.ReceiptFooter))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(storeName string, s *entity.Settings) core.Row {
	contact := []string{}
	if s.Address != "" {
		contact = append(contact, s.Address)
	}
	if s.Phone != "" {
		contact = append(contact, "Tel: "+s.Phone)
	}
	if s.TaxID != "" {
		contact = append(contact, "Id. fiscal: "+s.TaxID)
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New(storeName, props.Text{Style: fontstyle.Bold, Size: 15, Top: 1}),
			text.New(strings.Join(contact, "   |   "), props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
	)
}

func saleInfoRow(sale *entity.Sale) core.Row {
	info := fmt.Sprintf("Venta #%d — %s — %s",
		sale.ID, sale.Datetime.Format("2006-01-02 15:04:05"), sale.PaymentMethod)
	return row.New(10).Add(
		col.New(12).Add(
			text.New(info, props.Text{Style: fontstyle.Bold, Size: 11, Top: 2}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: al, Top: 1,
		}))
	}
	return row.New(7).Add(
		header("Artículo", 6, align.Left),
		header("Cant", 2, align.Right),
		header("Unit", 2, align.Right),
		header("Total", 2, align.Right),
	)
}

func tableLineRows(currency string, lines []*entity.SaleLineDetail) []core.Row {
	cell := func(s string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 9, Align: al}))
	}
	rows := make([]core.Row, 0, len(lines))
	for _, d := range lines {
		name := d.ProductName
		if d.Barcode != nil && *d.Barcode != "" {
			name += " [" + *d.Barcode + "]"
		}
		rows = append(rows, row.New(6).Add(
			cell(truncate(name, 48), 6, align.Left),
			cell(fmtQty(d.Qty), 2, align.Right),
			cell(fmtMoney(currency, d.UnitPriceGross), 2, align.Right),
			cell(fmtMoney(currency, d.LineGross()), 2, align.Right),
		))
	}
	return rows
}

func totalsRows(currency string, sale *entity.Sale) []core.Row {
	return []core.Row{
		row.New(7).Add(
			col.New(8),
			col.New(4).Add(text.New(
				"Total IVA: "+fmtMoney(currency, sale.TotalVat),
				props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1},
			)),
		),
		row.New(8).Add(
			col.New(8),
			col.New(4).Add(text.New(
				"Total: "+fmtMoney(currency, sale.TotalGross),
				props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1},
			)),
		),
	}
}

func footerRow(footer string) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(footer, props.Text{Style: fontstyle.Italic, Size: 9, Top: 4, Color: colorGray}),
		),
	)
}

// fmtMoney moneda de 3 decimales, ej. "TND 8.200".
func fmtMoney(currency string, v decimal.Decimal) string {
	return currency + " " + v.StringFixed(3)
}

// fmtQty cantidad sin ceros finales (2.000 -> "2", 1.250 -> "1.25").
func fmtQty(v decimal.Decimal) string {
	s := strings.TrimRight(v.StringFixed(3), "0")
	return strings.TrimRight(s, ".")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
