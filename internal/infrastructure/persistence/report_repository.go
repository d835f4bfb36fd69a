package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/boekhoud/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// GormReportRepository implements billing.ReportRepository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GORM-based report repository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// InvoicesInPeriod retrieves invoices issued in the inclusive date range,
// with their lines loaded for per-line VAT bucketing
func (r *GormReportRepository) InvoicesInPeriod(ctx context.Context, start, end time.Time) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("issue_date >= ? AND issue_date <= ?", start, end).
		Order("issue_date ASC, invoice_number ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices for period: %w", err)
	}
	return invoices, nil
}

// ExpensesInPeriod retrieves expenses dated in the inclusive date range
func (r *GormReportRepository) ExpensesInPeriod(ctx context.Context, start, end time.Time) ([]billing.Expense, error) {
	var expenses []billing.Expense
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for period: %w", err)
	}
	return expenses, nil
}
