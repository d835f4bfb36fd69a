package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvertGross(t *testing.T) {
	tests := []struct {
		name  string
		gross string
		rate  string
		net   string
		vat   string
	}{
		{"spec example", "121.00", "21.00", "100.00", "21.00"},
		{"reduced rate", "109.00", "9.00", "100.00", "9.00"},
		{"zero rate", "50.00", "0.00", "50.00", "0.00"},
		{"negative rate treated as zero", "50.00", "-5.00", "50.00", "0.00"},
		{"non-round price", "99.99", "21.00", "82.64", "17.35"},
		{"one cent", "0.01", "21.00", "0.01", "0.00"},
		{"zero gross", "0.00", "21.00", "0.00", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, vat := InvertGross(dec(tt.gross), dec(tt.rate))
			assert.Equal(t, tt.net, net.StringFixed(2), "net")
			assert.Equal(t, tt.vat, vat.StringFixed(2), "vat")
		})
	}
}

func TestInvertGross_DivideThenSubtract(t *testing.T) {
	// 10.00 / 1.21 = 8.2644... -> 8.26; vat = 10.00 - 8.26 = 1.74.
	// Computing vat directly (10.00 * 21/121 = 1.7355 -> 1.74) happens to
	// agree here, but net+vat must always reproduce the gross exactly.
	net, vat := InvertGross(dec("10.00"), dec("21.00"))
	assert.Equal(t, "8.26", net.StringFixed(2))
	assert.Equal(t, "1.74", vat.StringFixed(2))
	assert.True(t, net.Add(vat).Equal(dec("10.00")))
}

func TestNewExpense(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("derives net and vat", func(t *testing.T) {
		e, err := NewExpense("Office rent", date, dec("605.00"), dec("21.00"))
		require.NoError(t, err)
		assert.Equal(t, "500.00", e.AmountNet.StringFixed(2))
		assert.Equal(t, "105.00", e.VATAmount.StringFixed(2))
	})

	t.Run("rejects blank description", func(t *testing.T) {
		_, err := NewExpense("  ", date, dec("10.00"), dec("21.00"))
		assert.Error(t, err)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewExpense("Rent", time.Time{}, dec("10.00"), dec("21.00"))
		assert.Error(t, err)
	})

	t.Run("rejects negative gross", func(t *testing.T) {
		_, err := NewExpense("Rent", date, dec("-1.00"), dec("21.00"))
		assert.Error(t, err)
	})
}

func TestExpense_Update(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	e, err := NewExpense("Office rent", date, dec("605.00"), dec("21.00"))
	require.NoError(t, err)

	newDate := date.AddDate(0, 1, 0)
	require.NoError(t, e.Update("Office rent March", newDate, dec("121.00"), dec("21.00")))
	assert.Equal(t, "100.00", e.AmountNet.StringFixed(2))
	assert.Equal(t, "21.00", e.VATAmount.StringFixed(2))
	assert.Equal(t, newDate, e.Date)

	assert.Error(t, e.Update("", newDate, dec("1.00"), dec("0")))
}
