package sequence

import (
	"fmt"

	"textile-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductBarcode is the counter consumed by product creation.
const ProductBarcode = "product_barcode_seq"

// Ensure creates the named counter row if it does not exist yet.
// Safe to call on every startup.
func Ensure(db *gorm.DB, name string) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.SequenceCounter{Name: name, Value: 0}).Error
}

// Next atomically increments the named counter and returns the new value.
// The single UPDATE serializes concurrent callers at the storage layer, so
// no value is ever handed out twice, and the counter survives restarts.
func Next(db *gorm.DB, name string) (int64, error) {
	var value int64
	res := db.Raw(
		"UPDATE sequence_counters SET value = value + 1 WHERE name = ? RETURNING value",
		name,
	).Scan(&value)
	if res.Error != nil {
		return 0, fmt.Errorf("sequence %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("sequence %s: counter not initialized", name)
	}
	return value, nil
}
