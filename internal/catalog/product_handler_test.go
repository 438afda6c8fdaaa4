package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"textile-backend/internal/database"
	"textile-backend/internal/models"
	"textile-backend/internal/sequence"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.SequenceCounter{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := sequence.Ensure(db, sequence.ProductBarcode); err != nil {
		t.Fatalf("ensure sequence: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	database.DB = db
	return db
}

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/api/products", ListProductsHandler())
	app.Post("/api/products", CreateProductHandler())
	app.Get("/api/products/search", SearchProductsHandler())
	app.Get("/api/products/barcode/:code/image", BarcodeImageHandler())
	app.Get("/api/products/barcode/:code", GetProductByBarcodeHandler())
	app.Get("/api/products/:id", GetProductHandler())
	app.Put("/api/products/:id", UpdateProductHandler())
	app.Delete("/api/products/:id", DeleteProductHandler())
	return app
}

func createProduct(t *testing.T, app *fiber.App, payload string) ProductResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.StatusCode)
	}
	var res ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return res
}

func TestCreateProductAllocatesBarcode(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	first := createProduct(t, app, `{"product_name":"Blue Shirt","wholesale_price":250,"retail_price":499,"quantity":10}`)
	if first.Barcode != "WC000001" {
		t.Fatalf("expected WC000001 got %s", first.Barcode)
	}

	second := createProduct(t, app, `{"product_name":"Denim Jeans","wholesale_price":600,"retail_price":999,"quantity":5}`)
	if second.Barcode != "WC000002" {
		t.Fatalf("expected WC000002 got %s", second.Barcode)
	}
}

func TestCreateProductIgnoresClientBarcode(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	res := createProduct(t, app, `{"product_name":"Silk Scarf","retail_price":299,"barcode":"FAKE123"}`)
	if res.Barcode != "WC000001" {
		t.Fatalf("client-supplied barcode was not ignored, got %s", res.Barcode)
	}
}

func TestCreateProductConcurrentBarcodesDistinct(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	const n = 20
	barcodes := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := fmt.Sprintf(`{"product_name":"Fabric %d","retail_price":100}`, i)
			req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Errorf("request: %v", err)
				return
			}
			if resp.StatusCode != http.StatusCreated {
				t.Errorf("expected 201 got %d", resp.StatusCode)
				return
			}
			var res ProductResponse
			if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
				t.Errorf("decode: %v", err)
				return
			}
			barcodes <- res.Barcode
		}(i)
	}
	wg.Wait()
	close(barcodes)

	seen := make(map[string]bool)
	for b := range barcodes {
		if seen[b] {
			t.Fatalf("barcode %s allocated twice", b)
		}
		seen[b] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct barcodes got %d", n, len(seen))
	}
}

func TestUpdateProductKeepsBarcode(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	created := createProduct(t, app, `{"product_name":"Blue Shirt","retail_price":499}`)

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID),
		strings.NewReader(`{"product_name":"Blue Shirt XL","retail_price":549,"barcode":"HACKED"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var updated ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Barcode != created.Barcode {
		t.Fatalf("barcode changed on update: %s -> %s", created.Barcode, updated.Barcode)
	}
	if updated.ProductName != "Blue Shirt XL" {
		t.Fatalf("name not updated: %s", updated.ProductName)
	}
}

func TestGetProductByBarcodeAndNotFound(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	created := createProduct(t, app, `{"product_name":"Blue Shirt","retail_price":499}`)

	req := httptest.NewRequest(http.MethodGet, "/api/products/barcode/"+created.Barcode, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/products/barcode/WC999998", nil)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.StatusCode)
	}
}

func TestSearchProductsByName(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	createProduct(t, app, `{"product_name":"Blue Cotton Shirt","retail_price":499}`)
	createProduct(t, app, `{"product_name":"Denim Jeans","retail_price":999}`)

	req := httptest.NewRequest(http.MethodGet, "/api/products/search?q=shirt", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var res []ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res) != 1 || res[0].ProductName != "Blue Cotton Shirt" {
		t.Fatalf("unexpected search result: %+v", res)
	}
}

func TestBarcodeImageEndpoint(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/products/barcode/WC000042/image", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png got %s", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("\x89PNG")) {
		t.Fatal("response is not a PNG")
	}
}

func TestDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	created := createProduct(t, app, `{"product_name":"Blue Shirt","retail_price":499}`)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected 0 products got %d", count)
	}
}
