package models

import "time"

type Product struct {
	ID                uint    `gorm:"primaryKey"`
	SupplierName      string  `gorm:"size:100"`
	SupplierGSTNumber string  `gorm:"size:30"`
	ProductName       string  `gorm:"size:200;not null;index"`
	WholesalePrice    float64 `gorm:"not null"`
	RetailPrice       float64 `gorm:"not null"`
	FabricType        string  `gorm:"size:50"`
	Pattern           string  `gorm:"size:50"`
	Size              string  `gorm:"size:20"`
	Quantity          int     `gorm:"not null;default:0"`
	HSNCode           string  `gorm:"size:20"`
	Barcode           string  `gorm:"size:20;uniqueIndex;not null"` // assigned once at creation, never changed
	Status            string  `gorm:"size:20"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
