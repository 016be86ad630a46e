package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Minhaj401/invoice-generator-api/internal/utils/idgen"
	"github.com/Minhaj401/invoice-generator-api/internal/utils/platformerrors"
)

// RoundMoney applies the single monetary rounding policy: round-half-up to
// two decimal places. Every monetary value is rounded exactly once; sums are
// always taken over already-rounded parts so the totals stay exact to the
// cent.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Computer applies the deterministic invoice arithmetic.
type Computer struct {
	taxRate  decimal.Decimal
	dueDays  int
	currency string
}

// NewComputer builds a Computer with a fixed tax rate (e.g. 0.18), a payment
// due window in days and a currency code.
func NewComputer(taxRate decimal.Decimal, dueDays int, currency string) *Computer {
	return &Computer{taxRate: taxRate, dueDays: dueDays, currency: currency}
}

// Compute fills line totals, subtotal, tax and total, assigns an invoice
// number and stamps issue/due dates. Items arrive validated from the parser;
// the numeric checks here are defensive only.
func (c *Computer) Compute(ctx context.Context, items []LineItem, seller BusinessProfile, customer CustomerProfile, now time.Time) (*Invoice, error) {
	if len(items) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeComputation,
			"an invoice must have at least one line item", nil, "")
	}

	computed := make([]LineItem, len(items))
	subtotal := decimal.Zero
	for i, item := range items {
		if item.Quantity.Sign() <= 0 || item.UnitPrice.Sign() < 0 {
			return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeComputation,
				fmt.Sprintf("line item %d has invalid numbers", i), nil, "",
				map[string]any{"quantity": item.Quantity.String(), "unit_price": item.UnitPrice.String()})
		}
		item.LineTotal = RoundMoney(item.Quantity.Mul(item.UnitPrice))
		computed[i] = item
		subtotal = subtotal.Add(item.LineTotal)
	}

	taxAmount := RoundMoney(subtotal.Mul(c.taxRate))
	total := subtotal.Add(taxAmount)

	number, err := idgen.InvoiceNumber(now)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "assign invoice number")
	}

	return &Invoice{
		Number:    number,
		IssueDate: now,
		DueDate:   now.AddDate(0, 0, c.dueDays),
		Seller:    seller,
		Customer:  customer,
		Items:     computed,
		Subtotal:  subtotal,
		TaxRate:   c.taxRate,
		TaxAmount: taxAmount,
		Total:     total,
		Currency:  c.currency,
	}, nil
}
