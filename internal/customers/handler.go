package customers

import (
	"strings"
	"time"

	"textile-backend/internal/database"
	"textile-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

type CustomerRequest struct {
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email"`
	DOB           string `json:"dob"` // "2006-01-02"
	Address       string `json:"address"`
	MaritalStatus string `json:"marital_status"`
	DOM           string `json:"dom"` // "2006-01-02"
}

type CustomerResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email"`
	DOB           string `json:"dob"`
	Address       string `json:"address"`
	MaritalStatus string `json:"marital_status"`
	DOM           string `json:"dom"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func ToCustomerResponse(cu models.Customer) CustomerResponse {
	res := CustomerResponse{
		ID:            cu.ID,
		Name:          cu.Name,
		PhoneNumber:   cu.PhoneNumber,
		Email:         cu.Email,
		Address:       cu.Address,
		MaritalStatus: cu.MaritalStatus,
		CreatedAt:     cu.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     cu.UpdatedAt.Format(time.RFC3339),
	}
	if cu.DOB != nil {
		res.DOB = cu.DOB.Format("2006-01-02")
	}
	if cu.DOM != nil {
		res.DOM = cu.DOM.Format("2006-01-02")
	}
	return res
}

// POST /api/customers/upsert
// Insert-or-update keyed on the unique phone number, as a single conditional
// write. A read-then-write pair here would race under concurrent upserts for
// the same phone; the ON CONFLICT form leaves that to the storage layer.
func UpsertCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.PhoneNumber = strings.TrimSpace(body.PhoneNumber)
		body.Name = strings.TrimSpace(body.Name)
		if body.PhoneNumber == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and phone number are required")
		}

		dob, err := parseOptionalDate(body.DOB)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date format must be 'YYYY-MM-DD'")
		}
		dom, err := parseOptionalDate(body.DOM)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date format must be 'YYYY-MM-DD'")
		}

		now := time.Now()
		customer := models.Customer{
			Name:          body.Name,
			PhoneNumber:   body.PhoneNumber,
			Email:         body.Email,
			DOB:           dob,
			Address:       body.Address,
			MaritalStatus: body.MaritalStatus,
			DOM:           dom,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		err = database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "dob", "address", "marital_status", "dom", "updated_at"}),
		}).Create(&customer).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save customer")
		}

		// Re-read for the authoritative row: on a conflict the insert struct
		// does not carry the existing id or created_at.
		var saved models.Customer
		if err := database.DB.First(&saved, "phone_number = ?", body.PhoneNumber).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load customer")
		}
		return c.JSON(ToCustomerResponse(saved))
	}
}

// GET /api/customers/phone/:phoneNumber
func GetCustomerByPhoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customer models.Customer
		if err := database.DB.First(&customer, "phone_number = ?", c.Params("phoneNumber")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		return c.JSON(ToCustomerResponse(customer))
	}
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
