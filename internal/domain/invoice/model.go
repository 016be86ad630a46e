package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a single priced entry on an invoice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// BusinessProfile describes the seller. A default instance lives in the
// process configuration; per-request overrides merge over it field by field.
type BusinessProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	TaxID   string `json:"tax_id"`
}

// CustomerProfile describes the buyer. Only the name is required.
type CustomerProfile struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Invoice is a fully computed invoice, valid only for the lifetime of the
// request that produced it.
type Invoice struct {
	Number           string          `json:"invoice_number"`
	IssueDate        time.Time       `json:"issue_date"`
	DueDate          time.Time       `json:"due_date"`
	Seller           BusinessProfile `json:"seller"`
	Customer         CustomerProfile `json:"customer"`
	Items            []LineItem      `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	Total            decimal.Decimal `json:"total"`
	Currency         string          `json:"currency"`
	PaymentReference string          `json:"payment_reference,omitempty"`
}
