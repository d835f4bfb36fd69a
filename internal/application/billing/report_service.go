package billing

import (
	"context"
	"time"

	"github.com/boekhoud/backend/internal/domain/billing"
	"github.com/boekhoud/backend/internal/domain/shared"
)

// ReportService provides read-only period reporting
type ReportService struct {
	reportRepo billing.ReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo billing.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// VATReturn builds the VAT return for the inclusive period. Reading the
// same period twice yields the same figures; nothing is written.
func (s *ReportService) VATReturn(ctx context.Context, start, end time.Time) (*billing.VATReturn, error) {
	if start.IsZero() || end.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Period start and end are required")
	}
	if end.Before(start) {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Period end precedes period start")
	}

	invoices, err := s.reportRepo.InvoicesInPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.reportRepo.ExpensesInPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	ret := billing.BuildVATReturn(start, end, invoices, expenses)
	return &ret, nil
}
