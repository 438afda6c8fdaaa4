package catalog

import (
	"errors"
	"fmt"

	"textile-backend/internal/sequence"

	"gorm.io/gorm"
)

const (
	barcodePrefix = "WC"
	// The printed label format holds 6 digits. Past that the format is
	// undefined, so allocation fails loudly instead of truncating.
	maxBarcodeSequence = 999999
)

var ErrBarcodeRange = errors.New("sequence value outside the 6-digit barcode range")

// FormatBarcode renders a sequence value as a label barcode, e.g. 42 -> "WC000042".
func FormatBarcode(seq int64) (string, error) {
	if seq < 1 || seq > maxBarcodeSequence {
		return "", fmt.Errorf("format barcode %d: %w", seq, ErrBarcodeRange)
	}
	return fmt.Sprintf("%s%06d", barcodePrefix, seq), nil
}

// allocateBarcode consumes the next sequence value. It must run inside the
// same transaction that persists the product, so a failed insert does not
// leave a product without a barcode and an allocator failure persists nothing.
// Consumed values are never reused, even when the enclosing transaction rolls
// back on Postgres-style sequences; with the counter table a rollback returns
// the value, which still preserves uniqueness.
func allocateBarcode(tx *gorm.DB) (string, error) {
	seq, err := sequence.Next(tx, sequence.ProductBarcode)
	if err != nil {
		return "", err
	}
	return FormatBarcode(seq)
}
