// Package payment builds UPI payment intents and their scannable QR codes.
package payment

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Minhaj401/invoice-generator-api/internal/utils/platformerrors"
)

// UPI virtual payment addresses look like handle@psp.
var upiHandlePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-_]{1,99}@[A-Za-z]{2,64}$`)

// qrSize is the QR image edge in pixels; large enough to stay scannable
// after print reproduction on an A4 invoice.
const qrSize = 512

// Generator produces UPI payment-intent strings and QR images.
type Generator struct {
	currency string
}

func NewGenerator(currency string) *Generator {
	return &Generator{currency: currency}
}

// IntentString builds the upi://pay deep link embedding payee handle, payee
// name, amount (two decimals) and the invoice number as transaction note.
// The handle is validated before any encoding work happens.
func (g *Generator) IntentString(ctx context.Context, handle, payeeName string, amount decimal.Decimal, invoiceNumber string) (string, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeEncoding,
			"payee UPI handle is missing", nil, "")
	}
	if !upiHandlePattern.MatchString(handle) {
		return "", platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeEncoding,
			"payee UPI handle is malformed", nil, "", map[string]any{"handle": handle})
	}

	// The handle passed the pattern check, the amount and currency are
	// machine-formatted; only the free-text values need query escaping.
	note := fmt.Sprintf("Payment for Invoice %s", invoiceNumber)
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=%s&tn=%s",
		handle,
		url.QueryEscape(payeeName),
		amount.StringFixed(2),
		g.currency,
		url.QueryEscape(note),
	), nil
}

// QRCode encodes a payment intent into a PNG matrix barcode.
func (g *Generator) QRCode(ctx context.Context, intent string) ([]byte, error) {
	png, err := qrcode.Encode(intent, qrcode.Medium, qrSize)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeEncoding,
			"encode payment QR", err, "")
	}
	return png, nil
}

// Generate validates the handle, builds the intent string and encodes it.
func (g *Generator) Generate(ctx context.Context, handle, payeeName string, amount decimal.Decimal, invoiceNumber string) (string, []byte, error) {
	intent, err := g.IntentString(ctx, handle, payeeName, amount, invoiceNumber)
	if err != nil {
		return "", nil, err
	}
	png, err := g.QRCode(ctx, intent)
	if err != nil {
		return "", nil, err
	}
	return intent, png, nil
}
