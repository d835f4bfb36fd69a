package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/boekhoud/backend/internal/domain/billing"
	"github.com/boekhoud/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements billing.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GORM-based expense repository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *billing.Expense) error {
	if err := r.db.WithContext(ctx).Save(expense).Error; err != nil {
		return fmt.Errorf("failed to save expense: %w", translateError(err))
	}
	return nil
}

// FindByID retrieves an expense by ID. Returns nil if not found.
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Expense, error) {
	var expense billing.Expense
	err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	return &expense, nil
}

// FindAll retrieves expenses matching the filter with pagination
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter billing.ExpenseFilter) ([]billing.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&billing.Expense{})

	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		query = query.Where("description LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var expenses []billing.Expense
	err := query.
		Order("date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&expenses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find expenses: %w", err)
	}
	return expenses, total, nil
}

// Delete removes an expense by ID
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&billing.Expense{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
