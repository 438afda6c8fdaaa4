package main

import (
	"log"
	"strings"

	"textile-backend/internal/auth"
	"textile-backend/internal/billing"
	"textile-backend/internal/catalog"
	"textile-backend/internal/config"
	"textile-backend/internal/customers"
	"textile-backend/internal/database"
	"textile-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	database.Init(cfg)
	database.SeedAdminUser()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Everything else requires a valid token; the middleware re-loads the
	// user so authorization always sees the current role.
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Product catalog. Specific routes before the :id wildcard.
	protected.Get("/products", catalog.ListProductsHandler())
	protected.Post("/products", catalog.CreateProductHandler())
	protected.Get("/products/search", catalog.SearchProductsHandler())
	protected.Get("/products/barcode/:code/image", catalog.BarcodeImageHandler())
	protected.Get("/products/barcode/:code", catalog.GetProductByBarcodeHandler())
	protected.Get("/products/:id", catalog.GetProductHandler())
	protected.Put("/products/:id", catalog.UpdateProductHandler())

	// Customers
	protected.Post("/customers/upsert", customers.UpsertCustomerHandler())
	protected.Get("/customers/phone/:phoneNumber", customers.GetCustomerByPhoneHandler())

	// Billing
	protected.Post("/billing/invoice", billing.CreateInvoiceHandler())
	protected.Get("/billing/invoices", billing.ListInvoicesHandler())
	protected.Get("/billing/invoice/:id", billing.GetInvoiceHandler())
	protected.Get("/billing/invoice/:id/pdf", billing.InvoicePDFHandler())

	// Destructive and bulk operations are admin-only
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Post("/products/bulk-import", catalog.BulkImportProductsHandler())
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler())
	adminRoutes.Delete("/billing/invoice/:id", billing.DeleteInvoiceHandler())

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
