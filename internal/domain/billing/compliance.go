package billing

import (
	"regexp"
	"strings"
)

// placeholderVATPattern matches BTW numbers that were never filled in:
// the all-zeroes template or sample values with X runs.
var placeholderVATPattern = regexp.MustCompile(`(?i)^NL0{9}B[0-9]{2}$|X{4}`)

// ComplianceWarnings validates an invoice against the Dutch invoicing
// rule set and returns human-readable warnings. It is advisory only:
// it never fails and never blocks invoice creation. The order of the
// returned warnings is fixed so callers and tests can rely on it.
func ComplianceWarnings(company Company, inv *Invoice) []string {
	warnings := make([]string, 0)

	add := func(condition bool, warning string) {
		if condition {
			warnings = append(warnings, warning)
		}
	}

	add(blank(company.Name), "company name is missing from settings")
	add(blank(company.Address), "company address is missing from settings")
	add(blank(company.Postcode), "company postcode is missing from settings")
	add(blank(company.City), "company city is missing from settings")
	add(blank(company.KVK), "KVK number is missing from settings")
	add(blank(company.RSIN), "RSIN is missing from settings")

	if inv.VATScheme != SchemeExempt {
		if blank(company.VATNumber) {
			warnings = append(warnings, "BTW number is missing from settings")
		} else if placeholderVATPattern.MatchString(company.VATNumber) {
			warnings = append(warnings, "BTW number looks like a placeholder")
		}
	}

	add(blank(company.IBAN), "IBAN is missing from settings")
	add(blank(company.BIC), "BIC is missing from settings")

	add(blank(inv.ClientName), "invoice is missing a client name")
	add(blank(inv.ClientAddress), "invoice is missing a client address")

	if inv.VATScheme == SchemeReverseChargeEU {
		add(blank(inv.ClientVATNumber), "reverse charge requires the client's VAT number")
	}

	add(inv.SupplyDate == nil || inv.SupplyDate.IsZero(), "invoice is missing a supply date")
	add(len(inv.Lines) == 0, "invoice has no lines")

	return warnings
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
