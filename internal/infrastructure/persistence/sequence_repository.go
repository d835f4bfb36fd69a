package persistence

import (
	"context"
	"errors"

	"github.com/boekhoud/backend/internal/domain/billing"
	"github.com/boekhoud/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSequenceRepository implements billing.SequenceRepository using GORM
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GORM-based sequence repository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next allocates the next number for the (year, prefix) counter in its
// own transaction. Invoice creation uses NextInTx instead so the
// allocation rolls back together with the insert.
func (r *GormSequenceRepository) Next(ctx context.Context, prefix string, year int) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := r.NextInTx(tx, prefix, year)
		if err != nil {
			return err
		}
		next = n
		return nil
	})
	if err != nil {
		return 0, translateError(err)
	}
	return next, nil
}

// NextInTx increments the (year, prefix) counter and returns the new
// value. The UPDATE takes a row write lock that is held until the
// enclosing transaction commits, so concurrent callers are serialized
// and never observe the same value. Must be called inside a transaction.
func (r *GormSequenceRepository) NextInTx(tx *gorm.DB, prefix string, year int) (int64, error) {
	bump := func() (bool, error) {
		res := tx.Model(&billing.InvoiceSequence{}).
			Where("year = ? AND prefix = ?", year, prefix).
			UpdateColumn("last_seq", gorm.Expr("last_seq + 1"))
		if res.Error != nil {
			return false, res.Error
		}
		return res.RowsAffected > 0, nil
	}

	bumped, err := bump()
	if err != nil {
		return 0, err
	}
	if !bumped {
		// First invoice for this (year, prefix): create the counter row.
		// A concurrent creator may win the race. A failed insert aborts
		// the postgres transaction, so surface a conflict and let the
		// caller retry the whole transaction.
		seq := billing.InvoiceSequence{Year: year, Prefix: prefix, LastSeq: 1}
		if createErr := tx.Create(&seq).Error; createErr != nil {
			if errors.Is(translateError(createErr), shared.ErrConcurrencyConflict) {
				return 0, shared.ErrConcurrencyConflict
			}
			return 0, createErr
		}
		return 1, nil
	}

	var seq billing.InvoiceSequence
	if err := tx.Where("year = ? AND prefix = ?", year, prefix).
		First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.LastSeq, nil
}
