package billing

import (
	"time"

	"github.com/boekhoud/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// VATReturn holds the aggregate figures for a reporting period:
// net sales per rate bucket, output VAT on sales, input VAT on
// expenses, and the resulting position. VATDue may be negative,
// which is a refund position.
type VATReturn struct {
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Sales21     decimal.Decimal `json:"sales_21"`
	Sales9      decimal.Decimal `json:"sales_9"`
	Sales0      decimal.Decimal `json:"sales_0"`
	VATOut      decimal.Decimal `json:"vat_out"`
	VATIn       decimal.Decimal `json:"vat_in"`
	VATDue      decimal.Decimal `json:"vat_due"`
}

var (
	rate21 = decimal.NewFromInt(21)
	rate9  = decimal.NewFromInt(9)
)

// BuildVATReturn aggregates invoices and expenses for a period into a
// VAT return. It is pure: given the same rows it always produces the
// same figures. Reverse-charge lines are excluded from every bucket
// because the customer self-accounts for the VAT; zero-rated and
// exempt lines contribute their net to the 0% bucket without VAT.
func BuildVATReturn(periodStart, periodEnd time.Time, invoices []Invoice, expenses []Expense) VATReturn {
	r := VATReturn{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Sales21:     decimal.Zero,
		Sales9:      decimal.Zero,
		Sales0:      decimal.Zero,
		VATOut:      decimal.Zero,
		VATIn:       decimal.Zero,
	}

	for i := range invoices {
		inv := &invoices[i]
		for j := range inv.Lines {
			line := &inv.Lines[j]
			switch {
			case inv.VATScheme == SchemeReverseChargeEU:
				// customer self-accounts; nothing to report
			case inv.VATScheme.ZeroesVAT():
				r.Sales0 = r.Sales0.Add(line.Net)
			default:
				switch {
				case line.VATRate.Equal(rate21):
					r.Sales21 = r.Sales21.Add(line.Net)
				case line.VATRate.Equal(rate9):
					r.Sales9 = r.Sales9.Add(line.Net)
				default:
					r.Sales0 = r.Sales0.Add(line.Net)
				}
				r.VATOut = r.VATOut.Add(line.VAT)
			}
		}
	}

	for i := range expenses {
		r.VATIn = r.VATIn.Add(expenses[i].VATAmount)
	}

	r.Sales21 = valueobject.Round2(r.Sales21)
	r.Sales9 = valueobject.Round2(r.Sales9)
	r.Sales0 = valueobject.Round2(r.Sales0)
	r.VATOut = valueobject.Round2(r.VATOut)
	r.VATIn = valueobject.Round2(r.VATIn)
	r.VATDue = valueobject.Round2(r.VATOut.Sub(r.VATIn))

	return r
}
