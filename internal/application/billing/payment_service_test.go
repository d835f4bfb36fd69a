package billing

import (
	"context"
	"testing"
	"time"

	"github.com/boekhoud/backend/internal/domain/billing"
	"github.com/boekhoud/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func issuedTestInvoice(t *testing.T) *billing.Invoice {
	t.Helper()
	invoice, err := billing.NewInvoice(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), nil, nil,
		"EUR", "Acme BV", "Amsterdam", "NL123456789B01",
		billing.SchemeStandard,
		[]billing.LineInput{
			{Description: "Consulting", Quantity: dec("1"), UnitPrice: dec("100.00"), VATRate: dec("21")},
		},
	)
	require.NoError(t, err)
	return invoice
}

func TestPaymentService_RecordInvoicePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("partial payment moves the invoice to PARTIAL", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(invoiceRepo, paymentRepo, testCompany)

		invoice := issuedTestInvoice(t)
		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil).Once()
		invoiceRepo.On("Save", ctx, invoice).Return(nil).Once()

		resp, err := service.RecordInvoicePayment(ctx, invoice.ID, RecordPaymentRequest{
			Amount: dec("50.00"),
			Date:   time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			Method: "bank",
		})

		require.NoError(t, err)
		assert.Equal(t, "PARTIAL", resp.Status)
		assert.True(t, resp.Balance.Equal(dec("71.00")))
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("overpayment lands on PAID", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(invoiceRepo, paymentRepo, testCompany)

		invoice := issuedTestInvoice(t)
		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil).Once()
		invoiceRepo.On("Save", ctx, invoice).Return(nil).Once()

		resp, err := service.RecordInvoicePayment(ctx, invoice.ID, RecordPaymentRequest{
			Amount: dec("200.00"),
			Date:   time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		})

		require.NoError(t, err)
		assert.Equal(t, "PAID", resp.Status)
		assert.True(t, resp.Balance.Equal(dec("-79.00")))
	})

	t.Run("returns not found for missing invoice", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(invoiceRepo, paymentRepo, testCompany)

		id := uuid.New()
		invoiceRepo.On("FindByID", ctx, id).Return(nil, nil).Once()

		_, err := service.RecordInvoicePayment(ctx, id, RecordPaymentRequest{Amount: dec("10.00"), Date: time.Now()})

		assert.Error(t, err)
		invoiceRepo.AssertNotCalled(t, "Save")
	})
}

func TestPaymentService_RemoveInvoicePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("removal moves a PAID invoice back to SENT", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(invoiceRepo, paymentRepo, testCompany)

		invoice := issuedTestInvoice(t)
		payment := billing.NewPayment(dec("121.00"), time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), "bank")
		invoice.RecordPayment(payment)
		require.Equal(t, billing.StatusPaid, invoice.Status)

		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil).Once()
		invoiceRepo.On("Save", ctx, invoice).Return(nil).Once()

		resp, err := service.RemoveInvoicePayment(ctx, invoice.ID, payment.ID)

		require.NoError(t, err)
		assert.Equal(t, "SENT", resp.Status)
		assert.Empty(t, resp.Payments)
	})

	t.Run("unknown payment is an error", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(invoiceRepo, paymentRepo, testCompany)

		invoice := issuedTestInvoice(t)
		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil).Once()

		_, err := service.RemoveInvoicePayment(ctx, invoice.ID, uuid.New())

		assert.Error(t, err)
		invoiceRepo.AssertNotCalled(t, "Save")
	})
}

func TestPaymentService_UnattachedPayments(t *testing.T) {
	ctx := context.Background()

	t.Run("records freestanding income", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(invoiceRepo, paymentRepo, testCompany)

		paymentRepo.On("Save", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil).Once()

		resp, err := service.RecordUnattachedPayment(ctx, RecordPaymentRequest{
			Amount: dec("75.00"),
			Date:   time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
			Method: "cash",
		})

		require.NoError(t, err)
		assert.Nil(t, resp.InvoiceID)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete an attached payment directly", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(invoiceRepo, paymentRepo, testCompany)

		invoiceID := uuid.New()
		attached := billing.NewPayment(dec("10.00"), time.Now(), "bank")
		attached.InvoiceID = &invoiceID

		paymentRepo.On("FindByID", ctx, attached.ID).Return(&attached, nil).Once()

		err := service.DeleteUnattachedPayment(ctx, attached.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		paymentRepo.AssertNotCalled(t, "Delete")
	})
}
