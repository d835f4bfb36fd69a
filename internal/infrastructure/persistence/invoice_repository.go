package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/boekhoud/backend/internal/domain/billing"
	"github.com/boekhoud/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM.
// It owns number allocation: the sequence increment, the number format
// and the invoice insert all happen in one transaction.
type GormInvoiceRepository struct {
	db           *gorm.DB
	sequences    *GormSequenceRepository
	numberPrefix string
}

// NewGormInvoiceRepository creates a new GORM-based invoice repository
func NewGormInvoiceRepository(db *gorm.DB, sequences *GormSequenceRepository, numberPrefix string) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db, sequences: sequences, numberPrefix: numberPrefix}
}

// Create assigns the next invoice number for the issue year and inserts
// the invoice with its lines. A rollback rolls the counter increment
// back with it, so failed creations leave no gap in the sequence.
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := r.sequences.NextInTx(tx, r.numberPrefix, invoice.IssueDate.Year())
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = billing.FormatInvoiceNumber(r.numberPrefix, invoice.IssueDate.Year(), seq)
		return tx.Create(invoice).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", translateError(err))
	}
	return nil
}

// FindByID retrieves an invoice with its lines and payments.
// Returns nil if not found.
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	err := r.preloaded(ctx).First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find invoice by id: %w", err)
	}
	return &invoice, nil
}

// FindByNumber retrieves an invoice by its assigned number.
// Returns nil if not found.
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	var invoice billing.Invoice
	err := r.preloaded(ctx).First(&invoice, "invoice_number = ?", invoiceNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find invoice by number: %w", err)
	}
	return &invoice, nil
}

// FindAll retrieves invoices matching the filter with pagination
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&billing.Invoice{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Scheme != nil {
		query = query.Where("vat_scheme = ?", *filter.Scheme)
	}
	if filter.FromDate != nil {
		query = query.Where("issue_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("issue_date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number LIKE ? OR client_name LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var invoices []billing.Invoice
	err := query.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Payments").
		Order("issue_date DESC, invoice_number DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find invoices: %w", err)
	}
	return invoices, total, nil
}

// Save persists header changes and syncs lines and payments to match
// the aggregate. Rows absent from the aggregate are deleted, so a
// removed payment disappears in the same transaction that updates the
// derived status.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&billing.InvoiceLine{}).Error; err != nil {
			return err
		}
		if len(invoice.Lines) > 0 {
			if err := tx.Create(&invoice.Lines).Error; err != nil {
				return err
			}
		}

		keep := make([]uuid.UUID, 0, len(invoice.Payments))
		for i := range invoice.Payments {
			keep = append(keep, invoice.Payments[i].ID)
		}
		del := tx.Where("invoice_id = ?", invoice.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&billing.Payment{}).Error; err != nil {
			return err
		}
		if len(invoice.Payments) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&invoice.Payments).Error; err != nil {
				return err
			}
		}

		return tx.Omit(clause.Associations).Save(invoice).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save invoice: %w", translateError(err))
	}
	return nil
}

// Delete removes an invoice with its lines and attached payments.
// The number counter is never decremented; the number is spent.
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&billing.InvoiceLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&billing.Payment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&billing.Invoice{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

func (r *GormInvoiceRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Payments")
}
