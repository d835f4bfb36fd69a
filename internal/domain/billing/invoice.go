package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/boekhoud/backend/internal/domain/shared"
	"github.com/boekhoud/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VATScheme determines how VAT is applied at the invoice level
type VATScheme string

const (
	SchemeStandard        VATScheme = "STANDARD"          // Dutch domestic supply, per-line VAT applies
	SchemeReverseChargeEU VATScheme = "REVERSE_CHARGE_EU" // BTW verlegd: customer self-accounts
	SchemeZeroOutsideEU   VATScheme = "ZERO_OUTSIDE_EU"   // Export outside the EU, zero-rated
	SchemeExempt          VATScheme = "EXEMPT"            // VAT-exempt supply
)

// IsValid checks if the scheme is a valid VATScheme
func (s VATScheme) IsValid() bool {
	switch s {
	case SchemeStandard, SchemeReverseChargeEU, SchemeZeroOutsideEU, SchemeExempt:
		return true
	}
	return false
}

// String returns the string representation of VATScheme
func (s VATScheme) String() string {
	return string(s)
}

// ZeroesVAT returns true if the scheme suppresses VAT at the invoice level.
// Per-line VAT stays as computed for display and audit; only the header
// totals are forced to zero VAT.
func (s VATScheme) ZeroesVAT() bool {
	return s == SchemeReverseChargeEU || s == SchemeZeroOutsideEU || s == SchemeExempt
}

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "DRAFT"   // Not yet issued; set externally, never derived
	StatusSent    InvoiceStatus = "SENT"    // Issued, nothing paid
	StatusPartial InvoiceStatus = "PARTIAL" // Partially paid
	StatusPaid    InvoiceStatus = "PAID"    // Paid in full (or overpaid)
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPartial, StatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// DeriveStatus re-derives invoice status from cumulative payments.
// It is pure and never returns DRAFT: that state is only ever assigned
// directly, and a removed payment can legally move a PAID invoice back
// to PARTIAL or SENT.
func DeriveStatus(paid, gross decimal.Decimal) InvoiceStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return StatusSent
	case paid.LessThan(gross):
		return StatusPartial
	default:
		return StatusPaid
	}
}

// InvoiceLine is a single line on an invoice. It is owned by its invoice
// and deleted with it. Net, VAT and Total are derived from quantity,
// unit price and rate, rounded half-up to 2 decimals independently.
type InvoiceLine struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `json:"invoice_id" gorm:"type:uuid;not null;index"`
	Position    int             `json:"position" gorm:"not null"`
	Description string          `json:"description" gorm:"not null"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:numeric(14,2);not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(14,2);not null"`
	VATRate     decimal.Decimal `json:"vat_rate" gorm:"type:numeric(5,2);not null"`
	Net         decimal.Decimal `json:"net" gorm:"type:numeric(14,2);not null"`
	VAT         decimal.Decimal `json:"vat" gorm:"type:numeric(14,2);not null"`
	Total       decimal.Decimal `json:"total" gorm:"type:numeric(14,2);not null"`
}

// TableName sets the table name for InvoiceLine
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

// LineInput is the raw line data submitted by a caller
type LineInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal
}

// CalculateLine computes net, VAT and total for a single line.
// net and vat are each rounded half-up to 2 places before total is
// formed; the total is never derived from an unrounded product.
func CalculateLine(quantity, unitPrice, vatRate decimal.Decimal) (net, vat, total decimal.Decimal) {
	net = valueobject.Round2(quantity.Mul(unitPrice))
	vat = valueobject.Round2(net.Mul(vatRate).Div(decimal.NewFromInt(100)))
	total = net.Add(vat)
	return net, vat, total
}

// BuildLines converts raw line inputs into computed invoice lines.
// Lines with an empty description are silently dropped, not an error.
// A negative quantity is rejected; zero quantity or price is valid.
func BuildLines(inputs []LineInput) ([]InvoiceLine, error) {
	lines := make([]InvoiceLine, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Description) == "" {
			continue
		}
		if in.Quantity.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Line %q has negative quantity", in.Description))
		}
		net, vat, total := CalculateLine(in.Quantity, in.UnitPrice, in.VATRate)
		lines = append(lines, InvoiceLine{
			ID:          uuid.New(),
			Position:    len(lines) + 1,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			VATRate:     in.VATRate,
			Net:         net,
			VAT:         vat,
			Total:       total,
		})
	}
	return lines, nil
}

// Invoice is the invoice aggregate root. Totals are cached on the header
// and recomputed whenever lines or the VAT scheme change; the aggregate
// never trusts a stale cached total.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber   string               `json:"invoice_number" gorm:"uniqueIndex;not null"`
	IssueDate       time.Time            `json:"issue_date" gorm:"not null"`
	SupplyDate      *time.Time           `json:"supply_date"`
	DueDate         *time.Time           `json:"due_date"`
	Currency        valueobject.Currency `json:"currency" gorm:"not null;default:'EUR'"`
	ClientName      string               `json:"client_name"`
	ClientAddress   string               `json:"client_address"`
	ClientVATNumber string               `json:"client_vat_number"`
	VATScheme       VATScheme            `json:"vat_scheme" gorm:"not null;default:'STANDARD'"`
	Status          InvoiceStatus        `json:"status" gorm:"not null;default:'DRAFT'"`
	Lines           []InvoiceLine        `json:"lines" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Payments        []Payment            `json:"payments" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	NetTotal        decimal.Decimal      `json:"net_total" gorm:"type:numeric(14,2);not null"`
	VATTotal        decimal.Decimal      `json:"vat_total" gorm:"type:numeric(14,2);not null"`
	GrossTotal      decimal.Decimal      `json:"gross_total" gorm:"type:numeric(14,2);not null"`
}

// TableName sets the table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new invoice from header fields and raw line inputs.
// The invoice number is assigned later, by the repository, inside the same
// transaction that persists the invoice. Missing client data is not an
// error here; the compliance checker reports it as advisory warnings.
func NewInvoice(
	issueDate time.Time,
	supplyDate, dueDate *time.Time,
	currency valueobject.Currency,
	clientName, clientAddress, clientVATNumber string,
	scheme VATScheme,
	inputs []LineInput,
) (*Invoice, error) {
	if issueDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Issue date is required")
	}
	if scheme == "" {
		scheme = SchemeStandard
	}
	if !scheme.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Unknown VAT scheme %q", scheme))
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	lines, err := BuildLines(inputs)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		IssueDate:         issueDate,
		SupplyDate:        supplyDate,
		DueDate:           dueDate,
		Currency:          currency,
		ClientName:        clientName,
		ClientAddress:     clientAddress,
		ClientVATNumber:   clientVATNumber,
		VATScheme:         scheme,
		Lines:             lines,
	}
	for i := range inv.Lines {
		inv.Lines[i].InvoiceID = inv.ID
	}
	inv.Recalculate()
	inv.Status = DeriveStatus(inv.PaidAmount(), inv.GrossTotal)

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// Recalculate recomputes every line and the header totals from scratch.
// Line sums are re-rounded after summation. Under a VAT-zeroing scheme
// the header VAT total is forced to zero and gross equals net, while the
// per-line figures keep their computed values.
func (inv *Invoice) Recalculate() {
	net := decimal.Zero
	vat := decimal.Zero
	gross := decimal.Zero

	for i := range inv.Lines {
		l := &inv.Lines[i]
		l.Net, l.VAT, l.Total = CalculateLine(l.Quantity, l.UnitPrice, l.VATRate)
		net = net.Add(l.Net)
		vat = vat.Add(l.VAT)
		gross = gross.Add(l.Total)
	}

	inv.NetTotal = valueobject.Round2(net)
	inv.VATTotal = valueobject.Round2(vat)
	inv.GrossTotal = valueobject.Round2(gross)

	if inv.VATScheme.ZeroesVAT() {
		inv.VATTotal = decimal.Zero
		inv.GrossTotal = inv.NetTotal
	}
}

// ReplaceLines swaps the invoice's lines for a new set and recomputes
// totals and status
func (inv *Invoice) ReplaceLines(inputs []LineInput) error {
	lines, err := BuildLines(inputs)
	if err != nil {
		return err
	}
	for i := range lines {
		lines[i].InvoiceID = inv.ID
	}
	inv.Lines = lines
	inv.Recalculate()
	inv.RefreshStatus()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// ChangeScheme switches the VAT scheme and recomputes totals and status
func (inv *Invoice) ChangeScheme(scheme VATScheme) error {
	if !scheme.IsValid() {
		return shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Unknown VAT scheme %q", scheme))
	}
	inv.VATScheme = scheme
	inv.Recalculate()
	inv.RefreshStatus()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// PaidAmount returns the sum of attached payment amounts
func (inv *Invoice) PaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for i := range inv.Payments {
		paid = paid.Add(inv.Payments[i].Amount)
	}
	return paid
}

// Balance returns the outstanding amount, rounded to 2 decimals
func (inv *Invoice) Balance() decimal.Decimal {
	return valueobject.Round2(inv.GrossTotal.Sub(inv.PaidAmount()))
}

// RecordPayment attaches a payment and re-derives the status.
// On a DRAFT invoice the payment is recorded but the status stays
// DRAFT until Issue is called.
func (inv *Invoice) RecordPayment(p Payment) {
	id := inv.ID
	p.InvoiceID = &id
	inv.Payments = append(inv.Payments, p)

	previous := inv.Status
	inv.RefreshStatus()
	switch {
	case inv.Status == StatusPaid && previous != StatusPaid:
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	case inv.Status == StatusPartial:
		inv.AddDomainEvent(NewInvoicePartiallyPaidEvent(inv, p.Amount))
	}

	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// RemovePayment detaches a payment by ID and re-derives the status.
// Moving backwards out of PAID is legal; status is always re-derived
// from scratch.
func (inv *Invoice) RemovePayment(paymentID uuid.UUID) error {
	for i := range inv.Payments {
		if inv.Payments[i].ID == paymentID {
			inv.Payments = append(inv.Payments[:i], inv.Payments[i+1:]...)
			inv.RefreshStatus()
			inv.UpdatedAt = time.Now()
			inv.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Payment not found on invoice")
}

// RefreshStatus re-derives the status from cumulative payments.
// A DRAFT invoice stays DRAFT until it is issued.
func (inv *Invoice) RefreshStatus() {
	if inv.Status == StatusDraft {
		return
	}
	inv.Status = DeriveStatus(inv.PaidAmount(), inv.GrossTotal)
}

// Issue moves a DRAFT invoice into the derived-status lifecycle
func (inv *Invoice) Issue() {
	if inv.Status != StatusDraft {
		return
	}
	inv.Status = DeriveStatus(inv.PaidAmount(), inv.GrossTotal)
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// MarkDraft sets the external-only DRAFT state
func (inv *Invoice) MarkDraft() {
	inv.Status = StatusDraft
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}
