package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), EUR)
		require.NoError(t, err)
		assert.Equal(t, EUR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("42.42", EUR)
	require.NoError(t, err)
	assert.Equal(t, "42.42", m.StringFixed(2))

	_, err = NewMoneyFromString("not-a-number", EUR)
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyEURFromFloat(100.00)
	b := NewMoneyEURFromFloat(21.00)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "121.00", sum.StringFixed(2))

	diff, err := sum.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Equals(a))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	eur := NewMoneyEURFromFloat(10)
	usd, err := NewMoney(decimal.NewFromInt(10), USD)
	require.NoError(t, err)

	_, err = eur.Add(usd)
	assert.Error(t, err)
	_, err = eur.Subtract(usd)
	assert.Error(t, err)
	_, err = eur.LessThan(usd)
	assert.Error(t, err)
}

func TestMoney_Round2(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"1.005", "1.01"}, // half rounds up
		{"1.004", "1.00"},
		{"2.675", "2.68"},
		{"0.125", "0.13"},
		{"100", "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := NewMoneyEURFromString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.Round2().StringFixed(2))
		})
	}
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroEUR().IsZero())
	assert.True(t, NewMoneyEURFromFloat(0.01).IsPositive())
	assert.True(t, NewMoneyEURFromFloat(-0.01).IsNegative())
	assert.True(t, NewMoneyEURFromFloat(1).Negate().IsNegative())
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyEURFromFloat(9.99)
	big := NewMoneyEURFromFloat(10.00)

	less, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, less)

	gte, err := big.GreaterThanOrEqual(small)
	require.NoError(t, err)
	assert.True(t, gte)

	gte, err = big.GreaterThanOrEqual(big)
	require.NoError(t, err)
	assert.True(t, gte)
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyEURFromFloat(123.45)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"123.45","currency":"EUR"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("55.10"))
	assert.Equal(t, DefaultCurrency, m.Currency())
	assert.Equal(t, "55.10", m.StringFixed(2))

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}

func TestRound2(t *testing.T) {
	d, _ := decimal.NewFromString("0.005")
	assert.Equal(t, "0.01", Round2(d).StringFixed(2))
}
