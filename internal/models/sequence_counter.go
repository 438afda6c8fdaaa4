package models

// SequenceCounter backs the barcode allocator: one row per named counter,
// incremented atomically at the storage layer.
type SequenceCounter struct {
	Name  string `gorm:"primaryKey;size:100"`
	Value int64  `gorm:"not null"`
}
