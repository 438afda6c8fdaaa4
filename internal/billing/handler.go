package billing

import (
	"fmt"
	"strings"
	"time"

	"textile-backend/internal/customers"
	"textile-backend/internal/database"
	"textile-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateInvoiceRequest struct {
	InvoiceNumber  string               `json:"invoice_number"` // optional, generated when empty
	CustomerID     *uint                `json:"customer_id"`
	Subtotal       float64              `json:"subtotal"`
	Discount       float64              `json:"discount"`
	TaxableAmount  float64              `json:"taxable_amount"`
	CGSTPercentage string               `json:"cgst_percentage"`
	CGST           float64              `json:"cgst"`
	SGSTPercentage string               `json:"sgst_percentage"`
	SGST           float64              `json:"sgst"`
	Total          float64              `json:"total"`
	PaymentMethod  string               `json:"payment_method"`
	Items          []InvoiceItemRequest `json:"items"`
}

type InvoiceItemRequest struct {
	ProductID          uint    `json:"product_id"`
	ProductName        string  `json:"product_name"`
	Barcode            string  `json:"barcode"`
	HSNCode            string  `json:"hsn_code"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	SubTotal           float64 `json:"sub_total"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountAmount     float64 `json:"discount_amount"`
	Total              float64 `json:"total"`
}

type InvoiceResponse struct {
	ID              uint                        `json:"id"`
	InvoiceNumber   string                      `json:"invoice_number"`
	InvoiceDateTime string                      `json:"invoice_date_time"`
	CustomerID      *uint                       `json:"customer_id"`
	Customer        *customers.CustomerResponse `json:"customer,omitempty"`
	Subtotal        float64                     `json:"subtotal"`
	Discount        float64                     `json:"discount"`
	TaxableAmount   float64                     `json:"taxable_amount"`
	CGSTPercentage  string                      `json:"cgst_percentage"`
	CGST            float64                     `json:"cgst"`
	SGSTPercentage  string                      `json:"sgst_percentage"`
	SGST            float64                     `json:"sgst"`
	Total           float64                     `json:"total"`
	PaymentMethod   string                      `json:"payment_method"`
	Items           []InvoiceItemResponse       `json:"items"`
	CreatedAt       string                      `json:"created_at"`
}

type InvoiceItemResponse struct {
	ID                 uint    `json:"id"`
	ProductID          uint    `json:"product_id"`
	ProductName        string  `json:"product_name"`
	Barcode            string  `json:"barcode"`
	HSNCode            string  `json:"hsn_code"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	SubTotal           float64 `json:"sub_total"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountAmount     float64 `json:"discount_amount"`
	Total              float64 `json:"total"`
}

func toInvoiceResponse(inv models.Invoice) InvoiceResponse {
	res := InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		InvoiceDateTime: inv.InvoiceDateTime.Format(time.RFC3339),
		CustomerID:      inv.CustomerID,
		Subtotal:        inv.Subtotal,
		Discount:        inv.Discount,
		TaxableAmount:   inv.TaxableAmount,
		CGSTPercentage:  inv.CGSTPercentage,
		CGST:            inv.CGST,
		SGSTPercentage:  inv.SGSTPercentage,
		SGST:            inv.SGST,
		Total:           inv.Total,
		PaymentMethod:   inv.PaymentMethod,
		Items:           make([]InvoiceItemResponse, 0, len(inv.Items)),
		CreatedAt:       inv.CreatedAt.Format(time.RFC3339),
	}
	if inv.Customer != nil {
		cu := customers.ToCustomerResponse(*inv.Customer)
		res.Customer = &cu
	}
	for _, item := range inv.Items {
		res.Items = append(res.Items, InvoiceItemResponse{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			Barcode:            item.Barcode,
			HSNCode:            item.HSNCode,
			Price:              item.Price,
			Quantity:           item.Quantity,
			SubTotal:           item.SubTotal,
			DiscountPercentage: item.DiscountPercentage,
			DiscountAmount:     item.DiscountAmount,
			Total:              item.Total,
		})
	}
	return res
}

// POST /api/billing/invoice
// All timestamps on the invoice and its items come from a single server-side
// "now"; item ids and back-references supplied by the caller are discarded.
// Monetary fields are stored as supplied, there is no server-side
// recomputation against the line items.
func CreateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		for _, item := range body.Items {
			if item.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Item quantity must be greater than zero")
			}
		}

		now := time.Now()
		invoiceNumber := strings.TrimSpace(body.InvoiceNumber)
		if invoiceNumber == "" {
			// Millisecond timestamp fallback. Not collision-proof under
			// concurrent creation in the same millisecond; callers that need
			// a guarantee must supply their own number.
			invoiceNumber = fmt.Sprintf("INV-%d", now.UnixMilli())
		}

		invoice := models.Invoice{
			InvoiceNumber:   invoiceNumber,
			InvoiceDateTime: now,
			CustomerID:      body.CustomerID,
			Subtotal:        body.Subtotal,
			Discount:        body.Discount,
			TaxableAmount:   body.TaxableAmount,
			CGSTPercentage:  body.CGSTPercentage,
			CGST:            body.CGST,
			SGSTPercentage:  body.SGSTPercentage,
			SGST:            body.SGST,
			Total:           body.Total,
			PaymentMethod:   body.PaymentMethod,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		for _, item := range body.Items {
			invoice.Items = append(invoice.Items, models.InvoiceItem{
				ProductID:          item.ProductID,
				ProductName:        item.ProductName,
				Barcode:            item.Barcode,
				HSNCode:            item.HSNCode,
				Price:              item.Price,
				Quantity:           item.Quantity,
				SubTotal:           item.SubTotal,
				DiscountPercentage: item.DiscountPercentage,
				DiscountAmount:     item.DiscountAmount,
				Total:              item.Total,
				CreatedAt:          now,
				UpdatedAt:          now,
			})
		}

		// One insert for the invoice and its items: either everything lands
		// or nothing does.
		if err := database.DB.Create(&invoice).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create invoice")
		}

		return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(invoice))
	}
}

// GET /api/billing/invoices
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var invoices []models.Invoice
		err := database.DB.
			Preload("Items").
			Preload("Customer").
			Order("id desc").
			Find(&invoices).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list invoices")
		}

		res := make([]InvoiceResponse, 0, len(invoices))
		for _, inv := range invoices {
			res = append(res, toInvoiceResponse(inv))
		}
		return c.JSON(res)
	}
}

// GET /api/billing/invoice/:id
func GetInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		invoice, err := loadInvoice(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}
		return c.JSON(toInvoiceResponse(*invoice))
	}
}

// DELETE /api/billing/invoice/:id
// Items are removed in the same transaction; an invoice never leaves
// orphaned items behind.
func DeleteInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var invoice models.Invoice
		if err := database.DB.First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&invoice).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete invoice")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/billing/invoice/:id/pdf
func InvoicePDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		invoice, err := loadInvoice(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}

		pdf, err := RenderInvoicePDF(*invoice)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not render invoice PDF")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, invoice.ID))
		return c.Send(pdf)
	}
}

func loadInvoice(id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := database.DB.
		Preload("Items").
		Preload("Customer").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
