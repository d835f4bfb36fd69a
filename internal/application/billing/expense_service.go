package billing

import (
	"context"
	"time"

	"github.com/boekhoud/backend/internal/domain/billing"
	"github.com/boekhoud/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	expenseRepo billing.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo billing.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// ExpenseRequest represents a request to create or update an expense.
// Net and VAT are always derived from the gross amount, never submitted.
type ExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	AmountGross decimal.Decimal `json:"amount_gross" binding:"required"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	FromDate *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to_date" time_format:"2006-01-02"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	AmountGross decimal.Decimal `json:"amount_gross"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	AmountNet   decimal.Decimal `json:"amount_net"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseListResponse represents a paginated expense list
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// CreateExpense creates a new expense with derived net and VAT
func (s *ExpenseService) CreateExpense(ctx context.Context, req ExpenseRequest) (*ExpenseResponse, error) {
	expense, err := billing.NewExpense(req.Description, req.Date, req.AmountGross, req.VATRate)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetExpense gets an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses lists expenses matching the filter with pagination
func (s *ExpenseService) ListExpenses(ctx context.Context, filter ExpenseListFilter) (*ExpenseListResponse, error) {
	expenses, total, err := s.expenseRepo.FindAll(ctx, billing.ExpenseFilter{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, *toExpenseResponse(&expenses[i]))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &ExpenseListResponse{
		Expenses: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UpdateExpense replaces the expense fields and re-derives net and VAT
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
	}

	if err := expense.Update(req.Description, req.Date, req.AmountGross, req.VATRate); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// DeleteExpense removes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, id)
}

func toExpenseResponse(e *billing.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Date:        e.Date,
		AmountGross: e.AmountGross,
		VATRate:     e.VATRate,
		AmountNet:   e.AmountNet,
		VATAmount:   e.VATAmount,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
