package billing

import (
	"github.com/boekhoud/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants for the invoice aggregate
const (
	EventInvoiceCreated       = "invoice.created"
	EventInvoicePaid          = "invoice.paid"
	EventInvoicePartiallyPaid = "invoice.partially_paid"
)

const invoiceAggregateType = "Invoice"

// InvoiceCreatedEvent is raised when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	VATScheme     VATScheme       `json:"vat_scheme"`
	GrossTotal    decimal.Decimal `json:"gross_total"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoiceCreated, inv.ID, invoiceAggregateType),
		InvoiceNumber:   inv.InvoiceNumber,
		VATScheme:       inv.VATScheme,
		GrossTotal:      inv.GrossTotal,
	}
}

// InvoicePaidEvent is raised when cumulative payments reach the gross total
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoicePaid, inv.ID, invoiceAggregateType),
		InvoiceNumber:   inv.InvoiceNumber,
		PaidAmount:      inv.PaidAmount(),
	}
}

// InvoicePartiallyPaidEvent is raised when a payment leaves an outstanding balance
type InvoicePartiallyPaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	Balance       decimal.Decimal `json:"balance"`
}

// NewInvoicePartiallyPaidEvent creates a new InvoicePartiallyPaidEvent
func NewInvoicePartiallyPaidEvent(inv *Invoice, paymentAmount decimal.Decimal) *InvoicePartiallyPaidEvent {
	return &InvoicePartiallyPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoicePartiallyPaid, inv.ID, invoiceAggregateType),
		InvoiceNumber:   inv.InvoiceNumber,
		PaymentAmount:   paymentAmount,
		Balance:         inv.Balance(),
	}
}
