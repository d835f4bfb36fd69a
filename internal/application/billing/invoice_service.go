package billing

import (
	"context"
	"errors"
	"time"

	"github.com/boekhoud/backend/internal/domain/billing"
	"github.com/boekhoud/backend/internal/domain/shared"
	"github.com/boekhoud/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceService provides application-level invoice operations
type InvoiceService struct {
	invoiceRepo     billing.InvoiceRepository
	company         billing.Company
	defaultCurrency valueobject.Currency
}

// NewInvoiceService creates a new InvoiceService. defaultCurrency is
// used for creation requests that do not name a currency; when empty it
// falls back to EUR.
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, company billing.Company, defaultCurrency valueobject.Currency) *InvoiceService {
	if defaultCurrency == "" {
		defaultCurrency = valueobject.DefaultCurrency
	}
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		company:         company,
		defaultCurrency: defaultCurrency,
	}
}

// LineRequest represents a single invoice line in a request
type LineRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	IssueDate       time.Time     `json:"issue_date" binding:"required"`
	SupplyDate      *time.Time    `json:"supply_date"`
	DueDate         *time.Time    `json:"due_date"`
	Currency        string        `json:"currency"`
	ClientName      string        `json:"client_name"`
	ClientAddress   string        `json:"client_address"`
	ClientVATNumber string        `json:"client_vat_number"`
	VATScheme       string        `json:"vat_scheme" binding:"omitempty,vatscheme"`
	Draft           bool          `json:"draft"`
	Lines           []LineRequest `json:"lines" binding:"required"`
}

// UpdateInvoiceRequest represents a request to update an invoice's
// client data, scheme and lines
type UpdateInvoiceRequest struct {
	SupplyDate      *time.Time    `json:"supply_date"`
	DueDate         *time.Time    `json:"due_date"`
	ClientName      string        `json:"client_name"`
	ClientAddress   string        `json:"client_address"`
	ClientVATNumber string        `json:"client_vat_number"`
	VATScheme       string        `json:"vat_scheme" binding:"omitempty,vatscheme"`
	Lines           []LineRequest `json:"lines" binding:"required"`
}

// InvoiceListFilter defines filtering options for invoice list queries
type InvoiceListFilter struct {
	Status   string     `form:"status"`
	Scheme   string     `form:"vat_scheme"`
	FromDate *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to_date" time_format:"2006-01-02"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// LineResponse represents an invoice line in API responses
type LineResponse struct {
	ID          uuid.UUID       `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	Net         decimal.Decimal `json:"net"`
	VAT         decimal.Decimal `json:"vat"`
	Total       decimal.Decimal `json:"total"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID *uuid.UUID      `json:"invoice_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Method    string          `json:"method,omitempty"`
}

// InvoiceResponse represents an invoice in API responses. Warnings are
// the advisory compliance findings for the current company settings.
type InvoiceResponse struct {
	ID              uuid.UUID         `json:"id"`
	InvoiceNumber   string            `json:"invoice_number"`
	IssueDate       time.Time         `json:"issue_date"`
	SupplyDate      *time.Time        `json:"supply_date,omitempty"`
	DueDate         *time.Time        `json:"due_date,omitempty"`
	Currency        string            `json:"currency"`
	ClientName      string            `json:"client_name"`
	ClientAddress   string            `json:"client_address"`
	ClientVATNumber string            `json:"client_vat_number"`
	VATScheme       string            `json:"vat_scheme"`
	Status          string            `json:"status"`
	Lines           []LineResponse    `json:"lines"`
	Payments        []PaymentResponse `json:"payments"`
	NetTotal        decimal.Decimal   `json:"net_total"`
	VATTotal        decimal.Decimal   `json:"vat_total"`
	GrossTotal      decimal.Decimal   `json:"gross_total"`
	PaidAmount      decimal.Decimal   `json:"paid_amount"`
	Balance         decimal.Decimal   `json:"balance"`
	Warnings        []string          `json:"warnings"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Version         int               `json:"version"`
}

// InvoiceListResponse represents a paginated invoice list
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// CreateInvoice creates an invoice, allocating its number inside the
// persistence transaction. A concurrency conflict on the number counter
// is retried exactly once before it surfaces.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	currency := valueobject.Currency(req.Currency)
	if currency == "" {
		currency = s.defaultCurrency
	}

	invoice, err := billing.NewInvoice(
		req.IssueDate,
		req.SupplyDate,
		req.DueDate,
		currency,
		req.ClientName,
		req.ClientAddress,
		req.ClientVATNumber,
		billing.VATScheme(req.VATScheme),
		toLineInputs(req.Lines),
	)
	if err != nil {
		return nil, err
	}
	if req.Draft {
		invoice.MarkDraft()
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, err
		}
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return nil, err
		}
	}

	return toInvoiceResponse(s.company, invoice), nil
}

// GetInvoice gets an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	return toInvoiceResponse(s.company, invoice), nil
}

// GetInvoiceByNumber gets an invoice by its assigned number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	return toInvoiceResponse(s.company, invoice), nil
}

// ListInvoices lists invoices matching the filter with pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, filter InvoiceListFilter) (*InvoiceListResponse, error) {
	domainFilter := billing.InvoiceFilter{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Status != "" {
		status := billing.InvoiceStatus(filter.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("VALIDATION_FAILED", "Unknown invoice status")
		}
		domainFilter.Status = &status
	}
	if filter.Scheme != "" {
		scheme := billing.VATScheme(filter.Scheme)
		if !scheme.IsValid() {
			return nil, shared.NewDomainError("VALIDATION_FAILED", "Unknown VAT scheme")
		}
		domainFilter.Scheme = &scheme
	}

	invoices, total, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, *toInvoiceResponse(s.company, &invoices[i]))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &InvoiceListResponse{
		Invoices: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UpdateInvoice replaces the invoice's client data, scheme and lines,
// recomputing totals and status
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}

	invoice.SupplyDate = req.SupplyDate
	invoice.DueDate = req.DueDate
	invoice.ClientName = req.ClientName
	invoice.ClientAddress = req.ClientAddress
	invoice.ClientVATNumber = req.ClientVATNumber

	if req.VATScheme != "" {
		if err := invoice.ChangeScheme(billing.VATScheme(req.VATScheme)); err != nil {
			return nil, err
		}
	}
	if err := invoice.ReplaceLines(toLineInputs(req.Lines)); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(s.company, invoice), nil
}

// IssueInvoice moves a DRAFT invoice into the derived-status lifecycle
func (s *InvoiceService) IssueInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}

	invoice.Issue()
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(s.company, invoice), nil
}

// DeleteInvoice removes an invoice. Its number is spent and will not be
// issued again.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}

// CheckCompliance returns the advisory compliance warnings for an invoice
func (s *InvoiceService) CheckCompliance(ctx context.Context, id uuid.UUID) ([]string, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	return billing.ComplianceWarnings(s.company, invoice), nil
}

func toLineInputs(lines []LineRequest) []billing.LineInput {
	inputs := make([]billing.LineInput, 0, len(lines))
	for _, l := range lines {
		inputs = append(inputs, billing.LineInput{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VATRate:     l.VATRate,
		})
	}
	return inputs
}

func toInvoiceResponse(company billing.Company, inv *billing.Invoice) *InvoiceResponse {
	lines := make([]LineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, LineResponse{
			ID:          l.ID,
			Position:    l.Position,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VATRate:     l.VATRate,
			Net:         l.Net,
			VAT:         l.VAT,
			Total:       l.Total,
		})
	}

	payments := make([]PaymentResponse, 0, len(inv.Payments))
	for _, p := range inv.Payments {
		payments = append(payments, toPaymentResponse(p))
	}

	return &InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		IssueDate:       inv.IssueDate,
		SupplyDate:      inv.SupplyDate,
		DueDate:         inv.DueDate,
		Currency:        string(inv.Currency),
		ClientName:      inv.ClientName,
		ClientAddress:   inv.ClientAddress,
		ClientVATNumber: inv.ClientVATNumber,
		VATScheme:       inv.VATScheme.String(),
		Status:          inv.Status.String(),
		Lines:           lines,
		Payments:        payments,
		NetTotal:        inv.NetTotal,
		VATTotal:        inv.VATTotal,
		GrossTotal:      inv.GrossTotal,
		PaidAmount:      inv.PaidAmount(),
		Balance:         inv.Balance(),
		Warnings:        billing.ComplianceWarnings(company, inv),
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
		Version:         inv.Version,
	}
}

func toPaymentResponse(p billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Date:      p.Date,
		Method:    p.Method,
	}
}
