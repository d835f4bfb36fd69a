package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/boekhoud/backend/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReportRepository(t *testing.T) {
	db := setupBillingTestDB(t)
	invoiceRepo := NewGormInvoiceRepository(db, NewGormSequenceRepository(db), "INV")
	expenseRepo := NewGormExpenseRepository(db)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	q1Start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	q1End := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	dates := []time.Time{
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), // before
		q1Start, // boundary, included
		time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
		q1End, // boundary, included
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), // after
	}
	for _, d := range dates {
		require.NoError(t, invoiceRepo.Create(ctx, newTestInvoice(t, d)))

		expense, err := billing.NewExpense("Supplies", d, dec("60.50"), dec("21"))
		require.NoError(t, err)
		require.NoError(t, expenseRepo.Save(ctx, expense))
	}

	t.Run("invoice range is inclusive on both ends", func(t *testing.T) {
		invoices, err := repo.InvoicesInPeriod(ctx, q1Start, q1End)
		require.NoError(t, err)
		require.Len(t, invoices, 3)
		assert.True(t, invoices[0].IssueDate.Equal(q1Start))
		assert.True(t, invoices[2].IssueDate.Equal(q1End))
	})

	t.Run("invoices come with their lines", func(t *testing.T) {
		invoices, err := repo.InvoicesInPeriod(ctx, q1Start, q1End)
		require.NoError(t, err)
		for _, inv := range invoices {
			assert.Len(t, inv.Lines, 2)
		}
	})

	t.Run("expense range is inclusive on both ends", func(t *testing.T) {
		expenses, err := repo.ExpensesInPeriod(ctx, q1Start, q1End)
		require.NoError(t, err)
		assert.Len(t, expenses, 3)
	})

	t.Run("empty period yields no rows", func(t *testing.T) {
		invoices, err := repo.InvoicesInPeriod(ctx,
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, invoices)
	})
}
