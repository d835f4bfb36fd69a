package billing

import (
	"context"
	"time"

	"github.com/boekhoud/backend/internal/domain/billing"
	"github.com/boekhoud/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService provides application-level payment operations.
// Payments attached to an invoice are mutated through the invoice
// aggregate so the derived status always moves with them.
type PaymentService struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
	company     billing.Company
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	company billing.Company,
) *PaymentService {
	return &PaymentService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		company:     company,
	}
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Date   time.Time       `json:"date" binding:"required"`
	Method string          `json:"method"`
}

// RecordInvoicePayment attaches a payment to an invoice and re-derives
// its status. Overpayment is legal and simply lands on PAID.
func (s *PaymentService) RecordInvoicePayment(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}

	payment := billing.NewPayment(req.Amount, req.Date, req.Method)
	invoice.RecordPayment(payment)

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	return toInvoiceResponse(s.company, invoice), nil
}

// RemoveInvoicePayment detaches a payment from an invoice and re-derives
// its status. A PAID invoice legally moves back to PARTIAL or SENT.
func (s *PaymentService) RemoveInvoicePayment(ctx context.Context, invoiceID, paymentID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}

	if err := invoice.RemovePayment(paymentID); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	return toInvoiceResponse(s.company, invoice), nil
}

// RecordUnattachedPayment records freestanding income that belongs to
// no invoice
func (s *PaymentService) RecordUnattachedPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	payment := billing.NewPayment(req.Amount, req.Date, req.Method)
	if err := s.paymentRepo.Save(ctx, &payment); err != nil {
		return nil, err
	}
	resp := toPaymentResponse(payment)
	return &resp, nil
}

// ListUnattachedPayments lists freestanding income
func (s *PaymentService) ListUnattachedPayments(ctx context.Context) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindUnattached(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, toPaymentResponse(p))
	}
	return responses, nil
}

// DeleteUnattachedPayment removes freestanding income. Attached payments
// must be removed through their invoice.
func (s *PaymentService) DeleteUnattachedPayment(ctx context.Context, id uuid.UUID) error {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return shared.NewDomainError("NOT_FOUND", "Payment not found")
	}
	if payment.InvoiceID != nil {
		return shared.NewDomainError("INVALID_STATE", "Payment belongs to an invoice; remove it through the invoice")
	}
	return s.paymentRepo.Delete(ctx, id)
}
