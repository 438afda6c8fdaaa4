package database

import (
	"log"

	"textile-backend/internal/config"
	"textile-backend/internal/models"
	"textile-backend/internal/sequence"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Customer{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.SequenceCounter{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// The barcode counter must exist before the first product is created.
	if err := sequence.Ensure(DB, sequence.ProductBarcode); err != nil {
		log.Fatalf("Could not initialize barcode sequence: %v", err)
	}

	log.Println("Database connection established. Migration complete.")
}
