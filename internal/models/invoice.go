package models

import "time"

// Invoice owns its items: items carry the foreign key and are removed
// together with the invoice.
type Invoice struct {
	ID              uint      `gorm:"primaryKey"`
	InvoiceNumber   string    `gorm:"size:50;uniqueIndex;not null"`
	InvoiceDateTime time.Time `gorm:"index"`
	CustomerID      *uint     `gorm:"index"`
	Customer        *Customer
	Subtotal        float64
	Discount        float64
	TaxableAmount   float64
	CGSTPercentage  string `gorm:"size:10"`
	CGST            float64
	SGSTPercentage  string `gorm:"size:10"`
	SGST            float64
	Total           float64
	PaymentMethod   string `gorm:"size:30"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceItem denormalizes the product fields so an invoice stays readable
// after the product itself is edited or deleted.
type InvoiceItem struct {
	ID                 uint   `gorm:"primaryKey"`
	InvoiceID          uint   `gorm:"index;not null"`
	ProductID          uint   `gorm:"index"`
	ProductName        string `gorm:"size:200"`
	Barcode            string `gorm:"size:20"`
	HSNCode            string `gorm:"size:20"`
	Price              float64
	Quantity           int
	SubTotal           float64
	DiscountPercentage float64
	DiscountAmount     float64
	Total              float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
