package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvoiceFilter defines filtering options for invoice list queries
type InvoiceFilter struct {
	Status   *InvoiceStatus
	Scheme   *VATScheme
	FromDate *time.Time
	ToDate   *time.Time
	Search   string
	Page     int
	PageSize int
}

// ExpenseFilter defines filtering options for expense list queries
type ExpenseFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Search   string
	Page     int
	PageSize int
}

// InvoiceRepository persists the invoice aggregate. Create assigns the
// invoice number from the (year, prefix) sequence inside the same
// transaction as the insert, so an aborted creation rolls the counter
// increment back with it.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository persists payments, attached and unattached
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindUnattached(ctx context.Context) ([]Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseRepository persists expenses
type ExpenseRepository interface {
	Save(ctx context.Context, expense *Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, filter ExpenseFilter) ([]Expense, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SequenceRepository allocates invoice numbers. Next increments the
// (year, prefix) counter under a row lock and returns the new value;
// concurrent callers serialize on the lock so no value is issued twice.
type SequenceRepository interface {
	Next(ctx context.Context, prefix string, year int) (int64, error)
}

// ReportRepository reads back persisted rows for period reporting.
// Invoices are selected by issue date, expenses by expense date; both
// ranges are inclusive.
type ReportRepository interface {
	InvoicesInPeriod(ctx context.Context, start, end time.Time) ([]Invoice, error)
	ExpensesInPeriod(ctx context.Context, start, end time.Time) ([]Expense, error)
}
