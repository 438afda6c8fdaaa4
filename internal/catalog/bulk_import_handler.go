package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"textile-backend/internal/database"
	"textile-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Sheet columns, in order: Supplier Name, Supplier GST, Product Name,
// Wholesale Price, Retail Price, Fabric Type, Pattern, Size, Quantity,
// HSN Code, Status.

type BulkImportResponse struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

// POST /api/products/bulk-import
// Accepts an .xlsx with one product per row; each imported row gets a freshly
// allocated barcode. Rows fail independently: a bad row is reported and
// skipped, the rest are still imported.
func BulkImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files are accepted")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read Excel file: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file has no sheets")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read sheet: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file is empty")
		}

		// Skip the first row when it looks like the template header.
		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(firstCell, "SUPPLIER") || strings.Contains(firstCell, "PRODUCT") {
				startIndex = 1
			}
		}

		res := BulkImportResponse{Errors: []string{}}
		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			if len(row) == 0 || strings.TrimSpace(cell(row, 2)) == "" {
				continue
			}
			res.Total++

			product, err := parseProductRow(row)
			if err != nil {
				res.Failed++
				res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", i+1, err))
				continue
			}

			err = database.DB.Transaction(func(tx *gorm.DB) error {
				barcode, err := allocateBarcode(tx)
				if err != nil {
					return err
				}
				product.Barcode = barcode
				return tx.Create(product).Error
			})
			if err != nil {
				res.Failed++
				res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", i+1, err))
				continue
			}
			res.Imported++
		}

		return c.JSON(res)
	}
}

func parseProductRow(row []string) (*models.Product, error) {
	wholesale, err := parsePrice(cell(row, 3))
	if err != nil {
		return nil, fmt.Errorf("invalid wholesale price %q", cell(row, 3))
	}
	retail, err := parsePrice(cell(row, 4))
	if err != nil {
		return nil, fmt.Errorf("invalid retail price %q", cell(row, 4))
	}

	quantity := 0
	if q := strings.TrimSpace(cell(row, 8)); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil || quantity < 0 {
			return nil, fmt.Errorf("invalid quantity %q", q)
		}
	}

	now := time.Now()
	return &models.Product{
		SupplierName:      strings.TrimSpace(cell(row, 0)),
		SupplierGSTNumber: strings.TrimSpace(cell(row, 1)),
		ProductName:       strings.TrimSpace(cell(row, 2)),
		WholesalePrice:    wholesale,
		RetailPrice:       retail,
		FabricType:        strings.TrimSpace(cell(row, 5)),
		Pattern:           strings.TrimSpace(cell(row, 6)),
		Size:              strings.TrimSpace(cell(row, 7)),
		Quantity:          quantity,
		HSNCode:           strings.TrimSpace(cell(row, 9)),
		Status:            strings.TrimSpace(cell(row, 10)),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// cell returns the column value or "" for short rows; excelize drops
// trailing empty cells.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid price")
	}
	return v, nil
}
