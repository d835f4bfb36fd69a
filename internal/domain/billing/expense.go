package billing

import (
	"strings"
	"time"

	"github.com/boekhoud/backend/internal/domain/shared"
	"github.com/boekhoud/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Expense is a purchase-side record. It is independent of invoices;
// its net and VAT amounts are derived from the gross by inverting the
// gross-to-net relationship.
type Expense struct {
	shared.BaseEntity
	Description string          `json:"description" gorm:"not null"`
	Date        time.Time       `json:"date" gorm:"not null;index"`
	AmountGross decimal.Decimal `json:"amount_gross" gorm:"type:numeric(14,2);not null"`
	VATRate     decimal.Decimal `json:"vat_rate" gorm:"type:numeric(5,2);not null"`
	AmountNet   decimal.Decimal `json:"amount_net" gorm:"type:numeric(14,2);not null"`
	VATAmount   decimal.Decimal `json:"vat_amount" gorm:"type:numeric(14,2);not null"`
}

// TableName sets the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// InvertGross splits a gross amount into net and VAT for the given rate.
// The net is computed by division first and the VAT by subtraction from
// the gross; this order is load-bearing for rounding at non-round prices
// and must not be reordered. A rate of zero or less means no VAT.
func InvertGross(amountGross, vatRate decimal.Decimal) (amountNet, vatAmount decimal.Decimal) {
	if vatRate.LessThanOrEqual(decimal.Zero) {
		return amountGross, decimal.Zero
	}
	divisor := decimal.NewFromInt(1).Add(vatRate.Div(decimal.NewFromInt(100)))
	amountNet = valueobject.Round2(amountGross.Div(divisor))
	vatAmount = valueobject.Round2(amountGross.Sub(amountNet))
	return amountNet, vatAmount
}

// NewExpense creates a new expense with derived net and VAT amounts
func NewExpense(description string, date time.Time, amountGross, vatRate decimal.Decimal) (*Expense, error) {
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Expense description is required")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Expense date is required")
	}
	if amountGross.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Expense gross amount cannot be negative")
	}

	net, vat := InvertGross(amountGross, vatRate)
	return &Expense{
		BaseEntity:  shared.NewBaseEntity(),
		Description: description,
		Date:        date,
		AmountGross: amountGross,
		VATRate:     vatRate,
		AmountNet:   net,
		VATAmount:   vat,
	}, nil
}

// Update replaces the expense fields and re-derives net and VAT
func (e *Expense) Update(description string, date time.Time, amountGross, vatRate decimal.Decimal) error {
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Expense description is required")
	}
	if amountGross.IsNegative() {
		return shared.NewDomainError("VALIDATION_FAILED", "Expense gross amount cannot be negative")
	}
	e.Description = description
	e.Date = date
	e.AmountGross = amountGross
	e.VATRate = vatRate
	e.AmountNet, e.VATAmount = InvertGross(amountGross, vatRate)
	e.UpdatedAt = time.Now()
	return nil
}
