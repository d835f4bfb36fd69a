package billing

// Company is the supplier-settings snapshot consumed by the compliance
// checker. It is loaded from configuration; the engine never persists it.
type Company struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Postcode  string `json:"postcode"`
	City      string `json:"city"`
	KVK       string `json:"kvk"`        // Chamber of Commerce registration
	RSIN      string `json:"rsin"`       // Legal entity tax identifier
	VATNumber string `json:"vat_number"` // BTW-id, e.g. NL123456789B01
	IBAN      string `json:"iban"`
	BIC       string `json:"bic"`
}
