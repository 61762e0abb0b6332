package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superette-pos/backoffice/internal/application/catalog"
	"github.com/superette-pos/backoffice/internal/application/reporting"
	"github.com/superette-pos/backoffice/internal/application/sales"
	appsettings "github.com/superette-pos/backoffice/internal/application/settings"
	"github.com/superette-pos/backoffice/internal/application/stock"
	"github.com/superette-pos/backoffice/internal/domain/entity"
	"github.com/superette-pos/backoffice/internal/domain/event"
	"github.com/superette-pos/backoffice/internal/domain/repository"
	"github.com/superette-pos/backoffice/internal/infrastructure/pdf"
	apphttp "github.com/superette-pos/backoffice/internal/interfaces/http"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria que respalda todos los repos del router
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products   map[int64]*entity.Product
	sales      []*entity.Sale
	items      []*entity.SaleItem
	movements  []*entity.StockMovement
	settings   entity.Settings
	nextSaleID int64
}

func (s *memStore) clone() *memStore {
	c := &memStore{
		products:   make(map[int64]*entity.Product, len(s.products)),
		sales:      append([]*entity.Sale(nil), s.sales...),
		items:      append([]*entity.SaleItem(nil), s.items...),
		movements:  append([]*entity.StockMovement(nil), s.movements...),
		settings:   s.settings,
		nextSaleID: s.nextSaleID,
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	return c
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	p.ID = int64(len(r.s.products) + 1)
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}
func (r *memProductRepo) Update(p *entity.Product) error { cp := *p; r.s.products[p.ID] = &cp; return nil }
func (r *memProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *memProductRepo) List() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
func (r *memProductRepo) FindByBarcodeOrName(key string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if (p.Barcode != nil && *p.Barcode == key) || p.Name == key {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) SearchByQuery(string, int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) LowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Active && p.BelowReorderLevel() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memProductRepo) StockForUpdate(id int64) (decimal.Decimal, bool, error) {
	p, ok := r.s.products[id]
	if !ok {
		return decimal.Zero, false, nil
	}
	return p.StockQty, true, nil
}
func (r *memProductRepo) DeductStock(id int64, qty decimal.Decimal) (bool, error) {
	p, ok := r.s.products[id]
	if !ok || p.StockQty.LessThan(qty) {
		return false, nil
	}
	p.StockQty = p.StockQty.Sub(qty)
	return true, nil
}
func (r *memProductRepo) AddStock(id int64, qty decimal.Decimal) (bool, error) {
	p, ok := r.s.products[id]
	if !ok {
		return false, nil
	}
	p.StockQty = p.StockQty.Add(qty)
	return true, nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) CreateSale(sale *entity.Sale) error {
	r.s.nextSaleID++
	sale.ID = r.s.nextSaleID
	cp := *sale
	r.s.sales = append(r.s.sales, &cp)
	return nil
}
func (r *memSaleRepo) AddItem(it *entity.SaleItem) error {
	cp := *it
	r.s.items = append(r.s.items, &cp)
	return nil
}
func (r *memSaleRepo) GetSale(id int64) (*entity.Sale, error) {
	for _, s := range r.s.sales {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memSaleRepo) ListSales(from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		day := s.Datetime.Truncate(24 * time.Hour)
		if !day.Before(from.Truncate(24*time.Hour)) && !day.After(to.Truncate(24*time.Hour)) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memSaleRepo) SaleDetails(saleID int64) ([]*entity.SaleLineDetail, error) {
	var out []*entity.SaleLineDetail
	for _, it := range r.s.items {
		if it.SaleID != saleID {
			continue
		}
		d := &entity.SaleLineDetail{
			ProductID:      it.ProductID,
			Qty:            it.Qty,
			UnitPriceGross: it.UnitPriceGross,
			VatRate:        it.VatRate,
		}
		if p, ok := r.s.products[it.ProductID]; ok {
			d.ProductName = p.Name
			d.Barcode = p.Barcode
		}
		out = append(out, d)
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Append(m *entity.StockMovement) error {
	cp := *m
	cp.ID = int64(len(r.s.movements) + 1)
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r *memMovementRepo) ListByProduct(productID int64, _, _ *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *memMovementRepo) SumByProduct(productID int64) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Qty)
		}
	}
	return sum, nil
}

type memSettingsRepo struct{ s *memStore }

func (r *memSettingsRepo) Load() (*entity.Settings, error) {
	cp := r.s.settings
	return &cp, nil
}
func (r *memSettingsRepo) Save(in *entity.Settings) error {
	r.s.settings = *in
	return nil
}

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	work := r.s.clone()
	if err := fn(&memProductRepo{s: work}, &memSaleRepo{s: work}, &memMovementRepo{s: work}); err != nil {
		return err
	}
	*r.s = *work
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba con el router completo sobre los dobles
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp(products ...*entity.Product) (*fiber.App, *memStore) {
	store := &memStore{
		products: make(map[int64]*entity.Product),
		settings: entity.Settings{StoreName: "Superette El Manar", Currency: "TND", DefaultVatRate: dec("19")},
	}
	for _, p := range products {
		cp := *p
		store.products[p.ID] = &cp
	}

	productRepo := &memProductRepo{s: store}
	saleRepo := &memSaleRepo{s: store}
	movementRepo := &memMovementRepo{s: store}
	settingsRepo := &memSettingsRepo{s: store}
	txRunner := &memTxRunner{s: store}
	dispatcher := event.NewDispatcher()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CreateSale: sales.NewCreateSaleUseCase(txRunner, dispatcher),
		Reporting:  reporting.NewUseCase(saleRepo, settingsRepo),
		Stock:      stock.NewUseCase(txRunner, productRepo, movementRepo, dispatcher),
		Catalog:    catalog.NewUseCase(productRepo),
		Settings:   appsettings.NewUseCase(settingsRepo),
		Receipts:   pdf.NewReceiptGenerator(),
		Metrics:    prometheus.NewRegistry(),
	})
	return app, store
}

func producto(id int64, name, stockQty string) *entity.Product {
	return &entity.Product{
		ID:         id,
		Name:       name,
		PriceGross: dec("2.300"),
		VatRate:    dec("19"),
		StockQty:   dec(stockQty),
		Active:     true,
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/sales — mapeo de la taxonomía de errores a códigos HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestPostSales_Exito201(t *testing.T) {
	app, store := buildTestApp(producto(1, "Leche", "10"))

	resp := doJSON(t, app, http.MethodPost, "/api/sales", fiber.Map{
		"items": []fiber.Map{
			{"product_id": 1, "qty": "2", "unit_price_gross": "2.300", "vat_rate": "19"},
		},
		"payment_method": "CASH",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		SaleID int64 `json:"sale_id"`
	}
	decode(t, resp, &body)
	assert.Equal(t, int64(1), body.SaleID)
	assert.True(t, store.products[1].StockQty.Equal(dec("8")), "stock descontado")
}

func TestPostSales_CarritoVacio400(t *testing.T) {
	app, _ := buildTestApp(producto(1, "Leche", "10"))

	resp := doJSON(t, app, http.MethodPost, "/api/sales", fiber.Map{
		"items":          []fiber.Map{},
		"payment_method": "CASH",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "VALIDATION")
}

func TestPostSales_ProductoInexistente404(t *testing.T) {
	app, _ := buildTestApp(producto(1, "Leche", "10"))

	resp := doJSON(t, app, http.MethodPost, "/api/sales", fiber.Map{
		"items": []fiber.Map{
			{"product_id": 99, "qty": "1", "unit_price_gross": "2.300", "vat_rate": "19"},
		},
		"payment_method": "CASH",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostSales_StockInsuficiente409(t *testing.T) {
	app, store := buildTestApp(producto(1, "Leche", "1"))

	resp := doJSON(t, app, http.MethodPost, "/api/sales", fiber.Map{
		"items": []fiber.Map{
			{"product_id": 1, "qty": "5", "unit_price_gross": "2.300", "vat_rate": "19"},
		},
		"payment_method": "CARD",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "INSUFFICIENT_STOCK")
	assert.True(t, store.products[1].StockQty.Equal(dec("1")), "sin descuento parcial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial y detalle
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSales_DetalleConLineas(t *testing.T) {
	app, _ := buildTestApp(producto(1, "Leche", "10"), producto(2, "Pan", "5"))

	resp := doJSON(t, app, http.MethodPost, "/api/sales", fiber.Map{
		"items": []fiber.Map{
			{"product_id": 1, "qty": "2", "unit_price_gross": "2.300", "vat_rate": "19"},
			{"product_id": 2, "qty": "3", "unit_price_gross": "1.200", "vat_rate": "19"},
		},
		"payment_method": "CASH",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/sales/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Sale struct {
			TotalGross string `json:"total_gross"`
			TotalVat   string `json:"total_vat"`
		} `json:"sale"`
		Lines []struct {
			ProductName string `json:"product_name"`
			LineGross   string `json:"line_gross"`
		} `json:"lines"`
	}
	decode(t, resp, &body)

	assert.Equal(t, "8.200", body.Sale.TotalGross)
	assert.Equal(t, "1.309", body.Sale.TotalVat)
	require.Len(t, body.Lines, 2)
	assert.Equal(t, "Leche", body.Lines[0].ProductName, "líneas en orden de carrito")
	assert.Equal(t, "4.600", body.Lines[0].LineGross)
}

func TestGetSales_VentaInexistente404(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/sales/7", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetSales_IDInvalido400(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/sales/abc", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStockReceiptYReconcile(t *testing.T) {
	app, store := buildTestApp(producto(1, "Harina", "0"))

	resp := doJSON(t, app, http.MethodPost, "/api/stock/receipts", fiber.Map{
		"product_id": 1,
		"qty":        "12",
		"reference":  "REMITO-5",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, store.products[1].StockQty.Equal(dec("12")))

	resp = doJSON(t, app, http.MethodGet, "/api/stock/1/reconcile", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rec struct {
		Consistent bool   `json:"consistent"`
		LedgerSum  string `json:"ledger_sum"`
	}
	decode(t, resp, &rec)
	assert.True(t, rec.Consistent, "cacheado == suma del libro tras la entrada")
	assert.Equal(t, "12", rec.LedgerSum)
}

func TestStockLow(t *testing.T) {
	bajo := producto(1, "Casi agotado", "1")
	bajo.ReorderThreshold = dec("5")
	ok := producto(2, "Sobrado", "50")
	ok.ReorderThreshold = dec("5")
	app, _ := buildTestApp(bajo, ok)

	resp := doJSON(t, app, http.MethodGet, "/api/stock/low", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list []struct {
		ID int64 `json:"id"`
	}
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
}

func TestStockMovements_SinProductID400(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/stock/movements", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CRUDBasico(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/products", fiber.Map{
		"name":        "Aceite",
		"price_gross": "7.500",
		"vat_rate":    "19",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID       int64  `json:"id"`
		StockQty string `json:"stock_qty"`
	}
	decode(t, resp, &created)
	assert.Equal(t, "0", created.StockQty, "alta sin stock")

	resp = doJSON(t, app, http.MethodGet, "/api/products/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/products/99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_Lookup(t *testing.T) {
	p := producto(1, "Leche", "10")
	barcode := "6191234567890"
	p.Barcode = &barcode
	app, _ := buildTestApp(p)

	resp := doJSON(t, app, http.MethodGet, "/api/products/lookup?key=6191234567890", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/products/lookup?key=inexistente", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración
// ──────────────────────────────────────────────────────────────────────────────

func TestSettings_RoundTrip(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPut, "/api/settings", fiber.Map{
		"store_name":       "Superette Centre Ville",
		"currency":         "TND",
		"default_vat_rate": "19",
		"receipt_footer":   "Gracias por su compra",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/settings", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		StoreName     string `json:"store_name"`
		Currency      string `json:"currency"`
		ReceiptFooter string `json:"receipt_footer"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "Superette Centre Ville", body.StoreName)
	assert.Equal(t, "TND", body.Currency)
	assert.Equal(t, "Gracias por su compra", body.ReceiptFooter)
}
