package responses

import (
	"github.com/Minhaj401/invoice-generator-api/internal/domain/invoice"
)

// PreviewItem is one parsed line item in a preview response.
type PreviewItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// PreviewTotals carries the computed monetary summary.
type PreviewTotals struct {
	Subtotal  string `json:"subtotal"`
	TaxRate   string `json:"tax_rate"`
	TaxAmount string `json:"tax_amount"`
	Total     string `json:"total"`
	Currency  string `json:"currency"`
}

// PreviewResponse is returned by the preview endpoint: parsed items and
// totals without a rendered document.
type PreviewResponse struct {
	Items  []PreviewItem `json:"items"`
	Totals PreviewTotals `json:"totals"`
}

// NewPreviewResponse converts a computed invoice into the preview shape.
func NewPreviewResponse(inv *invoice.Invoice) PreviewResponse {
	items := make([]PreviewItem, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = PreviewItem{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		}
	}
	return PreviewResponse{
		Items: items,
		Totals: PreviewTotals{
			Subtotal:  inv.Subtotal.StringFixed(2),
			TaxRate:   inv.TaxRate.String(),
			TaxAmount: inv.TaxAmount.StringFixed(2),
			Total:     inv.Total.StringFixed(2),
			Currency:  inv.Currency,
		},
	}
}
