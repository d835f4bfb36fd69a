package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is money received. When InvoiceID is set the payment belongs
// to that invoice and counts towards its status; an unattached payment
// is freestanding income in the ledger. The amount is expected to be
// positive but is deliberately not validated here: a negative payment
// is how the source records a correction.
type Payment struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	InvoiceID *uuid.UUID      `json:"invoice_id" gorm:"type:uuid;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	Date      time.Time       `json:"date" gorm:"not null"`
	Method    string          `json:"method"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new unattached payment
func NewPayment(amount decimal.Decimal, date time.Time, method string) Payment {
	now := time.Now()
	return Payment{
		ID:        uuid.New(),
		Amount:    amount,
		Date:      date,
		Method:    method,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
