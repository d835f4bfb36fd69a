package billing

import (
	"fmt"
	"time"
)

// InvoiceSequence is the per (year, prefix) invoice number counter.
// LastSeq only ever moves forward: numbers are never reused and the
// counter is never decremented, even when an invoice is deleted later.
// Skips are possible when an allocating transaction rolls back; the
// sequence is gapless on success, gaps allowed on abort.
type InvoiceSequence struct {
	Year      int    `json:"year" gorm:"primaryKey;autoIncrement:false"`
	Prefix    string `json:"prefix" gorm:"primaryKey"`
	LastSeq   int64  `json:"last_seq" gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName sets the table name for InvoiceSequence
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}

// FormatInvoiceNumber formats a sequence value as an invoice number.
// The sequence is zero-padded to 4 digits and widens past 9999.
func FormatInvoiceNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}
