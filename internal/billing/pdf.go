package billing

import (
	"bytes"
	"fmt"

	"textile-backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// RenderInvoicePDF turns a loaded invoice (items and customer preloaded)
// into a printable document. Reads only its argument, mutates nothing.
func RenderInvoicePDF(inv models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, "Invoice No: "+inv.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Date: "+inv.InvoiceDateTime.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	if inv.PaymentMethod != "" {
		pdf.CellFormat(0, 7, "Payment: "+inv.PaymentMethod, "", 1, "L", false, 0, "")
	}

	if inv.Customer != nil {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, "Bill To", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 6, inv.Customer.Name, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, inv.Customer.PhoneNumber, "", 1, "L", false, 0, "")
		if inv.Customer.Address != "" {
			pdf.CellFormat(0, 6, inv.Customer.Address, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(55, 8, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 8, "Barcode", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "HSN", "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(12, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 8, "Discount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 8, "Total", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(55, 8, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 8, item.Barcode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 8, item.HSNCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(12, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.2f", item.DiscountAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 8, fmt.Sprintf("%.2f", item.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	summary := func(label string, value float64) {
		pdf.CellFormat(134, 7, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(28, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(28, 7, fmt.Sprintf("%.2f", value), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "", 10)
	summary("Subtotal", inv.Subtotal)
	summary("Discount", inv.Discount)
	summary("Taxable", inv.TaxableAmount)
	summary("CGST "+inv.CGSTPercentage, inv.CGST)
	summary("SGST "+inv.SGSTPercentage, inv.SGST)
	pdf.SetFont("Arial", "B", 11)
	summary("Grand Total", inv.Total)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
