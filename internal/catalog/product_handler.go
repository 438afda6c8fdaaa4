package catalog

import (
	"strings"
	"time"

	"textile-backend/internal/database"
	"textile-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductRequest struct {
	SupplierName      string  `json:"supplier_name"`
	SupplierGSTNumber string  `json:"supplier_gst_number"`
	ProductName       string  `json:"product_name"`
	WholesalePrice    float64 `json:"wholesale_price"`
	RetailPrice       float64 `json:"retail_price"`
	FabricType        string  `json:"fabric_type"`
	Pattern           string  `json:"pattern"`
	Size              string  `json:"size"`
	Quantity          int     `json:"quantity"`
	HSNCode           string  `json:"hsn_code"`
	Status            string  `json:"status"`
}

type ProductResponse struct {
	ID                uint    `json:"id"`
	SupplierName      string  `json:"supplier_name"`
	SupplierGSTNumber string  `json:"supplier_gst_number"`
	ProductName       string  `json:"product_name"`
	WholesalePrice    float64 `json:"wholesale_price"`
	RetailPrice       float64 `json:"retail_price"`
	FabricType        string  `json:"fabric_type"`
	Pattern           string  `json:"pattern"`
	Size              string  `json:"size"`
	Quantity          int     `json:"quantity"`
	HSNCode           string  `json:"hsn_code"`
	Barcode           string  `json:"barcode"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		SupplierName:      p.SupplierName,
		SupplierGSTNumber: p.SupplierGSTNumber,
		ProductName:       p.ProductName,
		WholesalePrice:    p.WholesalePrice,
		RetailPrice:       p.RetailPrice,
		FabricType:        p.FabricType,
		Pattern:           p.Pattern,
		Size:              p.Size,
		Quantity:          p.Quantity,
		HSNCode:           p.HSNCode,
		Barcode:           p.Barcode,
		Status:            p.Status,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("id desc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/products
// The barcode in the payload, if any, is ignored: it is always allocated
// here, inside the same transaction that persists the row. An allocator
// failure aborts the creation with nothing written.
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.ProductName = strings.TrimSpace(body.ProductName)
		if body.ProductName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
		}
		if body.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity cannot be negative")
		}

		now := time.Now()
		product := models.Product{
			SupplierName:      body.SupplierName,
			SupplierGSTNumber: body.SupplierGSTNumber,
			ProductName:       body.ProductName,
			WholesalePrice:    body.WholesalePrice,
			RetailPrice:       body.RetailPrice,
			FabricType:        body.FabricType,
			Pattern:           body.Pattern,
			Size:              body.Size,
			Quantity:          body.Quantity,
			HSNCode:           body.HSNCode,
			Status:            body.Status,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			barcode, err := allocateBarcode(tx)
			if err != nil {
				return err
			}
			product.Barcode = barcode
			return tx.Create(&product).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create product")
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return c.JSON(toProductResponse(product))
	}
}

// PUT /api/products/:id
// The barcode is immutable once assigned; updates never touch it.
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.ProductName = strings.TrimSpace(body.ProductName)
		if body.ProductName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
		}
		if body.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity cannot be negative")
		}

		product.SupplierName = body.SupplierName
		product.SupplierGSTNumber = body.SupplierGSTNumber
		product.ProductName = body.ProductName
		product.WholesalePrice = body.WholesalePrice
		product.RetailPrice = body.RetailPrice
		product.FabricType = body.FabricType
		product.Pattern = body.Pattern
		product.Size = body.Size
		product.Quantity = body.Quantity
		product.HSNCode = body.HSNCode
		product.Status = body.Status
		product.UpdatedAt = time.Now()

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}
		return c.JSON(toProductResponse(product))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		if err := database.DB.Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/products/barcode/:code
func GetProductByBarcodeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "barcode = ?", c.Params("code")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return c.JSON(toProductResponse(product))
	}
}

// GET /api/products/barcode/:code/image?width=300&height=80
func BarcodeImageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params("code")
		width := c.QueryInt("width", 300)
		height := c.QueryInt("height", 80)
		if width <= 0 || height <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Width and height must be positive")
		}

		img, err := RenderBarcodePNG(code, width, height)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not render barcode")
		}

		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(img)
	}
}

// GET /api/products/search?q=shirt
func SearchProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Query parameter 'q' is required")
		}

		var products []models.Product
		err := database.DB.
			Where("LOWER(product_name) LIKE ?", "%"+strings.ToLower(q)+"%").
			Order("id desc").
			Find(&products).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not search products")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}
