package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/boekhoud/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormExpenseRepository(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()

	t.Run("saves and reads back derived amounts", func(t *testing.T) {
		expense, err := billing.NewExpense("Office chair", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), dec("121.00"), dec("21"))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, expense))

		found, err := repo.FindByID(ctx, expense.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.AmountNet.Equal(dec("100.00")))
		assert.True(t, found.VATAmount.Equal(dec("21.00")))
	})

	t.Run("updates in place", func(t *testing.T) {
		expense, err := billing.NewExpense("Laptop", time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), dec("999.00"), dec("21"))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, expense))

		require.NoError(t, expense.Update("Laptop", expense.Date, dec("1099.00"), dec("21")))
		require.NoError(t, repo.Save(ctx, expense))

		found, err := repo.FindByID(ctx, expense.ID)
		require.NoError(t, err)
		assert.True(t, found.AmountGross.Equal(dec("1099.00")))
	})

	t.Run("returns nil for unknown id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("filters and paginates", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			expense, err := billing.NewExpense("Train ticket", time.Date(2025, 4, 1+i, 0, 0, 0, 0, time.UTC), dec("25.00"), dec("9"))
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, expense))
		}

		_, total, err := repo.FindAll(ctx, billing.ExpenseFilter{Search: "Train"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)

		from := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
		expenses, total, err := repo.FindAll(ctx, billing.ExpenseFilter{FromDate: &from, Search: "Train"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, expenses, 2)

		expenses, total, err = repo.FindAll(ctx, billing.ExpenseFilter{Search: "Train", Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, expenses, 1)
	})

	t.Run("deletes and reports missing", func(t *testing.T) {
		expense, err := billing.NewExpense("Subscription", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), dec("12.10"), dec("21"))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, expense))

		require.NoError(t, repo.Delete(ctx, expense.ID))
		assert.Error(t, repo.Delete(ctx, expense.ID))
	})
}
