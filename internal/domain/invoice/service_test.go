package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Minhaj401/invoice-generator-api/internal/utils/platformerrors"
)

type stubParser struct {
	items []LineItem
	err   error
	calls int
}

func (p *stubParser) Parse(ctx context.Context, transcript []string) ([]LineItem, error) {
	p.calls++
	return p.items, p.err
}

type stubPayments struct {
	intent string
	png    []byte
	err    error
	calls  int

	gotHandle string
	gotPayee  string
	gotAmount decimal.Decimal
}

func (p *stubPayments) Generate(ctx context.Context, handle, payeeName string, amount decimal.Decimal, invoiceNumber string) (string, []byte, error) {
	p.calls++
	p.gotHandle = handle
	p.gotPayee = payeeName
	p.gotAmount = amount
	return p.intent, p.png, p.err
}

type stubRenderer struct {
	doc   []byte
	err   error
	calls int
}

func (r *stubRenderer) Render(ctx context.Context, inv *Invoice, qrPNG []byte) ([]byte, error) {
	r.calls++
	return r.doc, r.err
}

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func parsedItems() []LineItem {
	return []LineItem{
		{Description: "Margherita Pizza", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(400)},
	}
}

func newPipeline(parser *stubParser, payments *stubPayments, renderer *stubRenderer) *Service {
	defaults := BusinessProfile{
		Name:    "Default Business",
		Address: "Default Address",
		Phone:   "+91-0000000000",
		Email:   "default@example.com",
		TaxID:   "N/A",
	}
	computer := NewComputer(decimal.RequireFromString("0.18"), 7, "INR")
	return NewService(defaults, parser, computer, payments, renderer, zerolog.Nop(), WithClock(func() time.Time { return fixedNow }))
}

func TestGeneratePipeline(t *testing.T) {
	parser := &stubParser{items: parsedItems()}
	payments := &stubPayments{intent: "upi://pay?pa=shop@upi", png: []byte{0x89, 'P', 'N', 'G'}}
	renderer := &stubRenderer{doc: []byte("%PDF-1.4 fake")}
	svc := newPipeline(parser, payments, renderer)

	result, err := svc.Generate(context.Background(), GenerateRequest{
		Chats:     []string{"2 margherita pizzas"},
		UPIHandle: "shop@upi",
		Customer:  CustomerProfile{Name: "Rahul"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, parser.calls)
	assert.Equal(t, 1, payments.calls)
	assert.Equal(t, 1, renderer.calls)

	assert.Equal(t, "shop@upi", payments.gotHandle)
	assert.Equal(t, "Default Business", payments.gotPayee)
	assert.True(t, payments.gotAmount.Equal(decimal.RequireFromString("944.00")), "amount = %s", payments.gotAmount)

	assert.Equal(t, "upi://pay?pa=shop@upi", result.Invoice.PaymentReference)
	assert.Equal(t, []byte("%PDF-1.4 fake"), result.Document)
	assert.Equal(t, "invoice_"+result.Invoice.Number+".pdf", result.Filename)
	assert.Equal(t, "Rahul", result.Invoice.Customer.Name)
	assert.Equal(t, fixedNow, result.Invoice.IssueDate)
}

func TestGenerateUsesExplicitPayeeName(t *testing.T) {
	parser := &stubParser{items: parsedItems()}
	payments := &stubPayments{intent: "x", png: []byte{1}}
	renderer := &stubRenderer{doc: []byte("%PDF")}
	svc := newPipeline(parser, payments, renderer)

	_, err := svc.Generate(context.Background(), GenerateRequest{
		Chats:     []string{"order"},
		UPIHandle: "shop@upi",
		PayeeName: "Pizza Palace Pvt Ltd",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pizza Palace Pvt Ltd", payments.gotPayee)
}

func TestGenerateAppliesBusinessOverrides(t *testing.T) {
	parser := &stubParser{items: parsedItems()}
	payments := &stubPayments{intent: "x", png: []byte{1}}
	renderer := &stubRenderer{doc: []byte("%PDF")}
	svc := newPipeline(parser, payments, renderer)

	result, err := svc.Generate(context.Background(), GenerateRequest{
		Chats:     []string{"order"},
		UPIHandle: "shop@upi",
		Overrides: BusinessProfile{Name: "Pizza Palace", TaxID: "29ABCDE1234F1Z5"},
	})
	require.NoError(t, err)

	seller := result.Invoice.Seller
	assert.Equal(t, "Pizza Palace", seller.Name)
	assert.Equal(t, "29ABCDE1234F1Z5", seller.TaxID)
	assert.Equal(t, "Default Address", seller.Address)
	assert.Equal(t, "default@example.com", seller.Email)
	assert.Equal(t, "Pizza Palace", payments.gotPayee)
}

func TestGenerateDefaultsCustomerName(t *testing.T) {
	parser := &stubParser{items: parsedItems()}
	payments := &stubPayments{intent: "x", png: []byte{1}}
	renderer := &stubRenderer{doc: []byte("%PDF")}
	svc := newPipeline(parser, payments, renderer)

	result, err := svc.Generate(context.Background(), GenerateRequest{
		Chats:     []string{"order"},
		UPIHandle: "shop@upi",
	})
	require.NoError(t, err)
	assert.Equal(t, "N/A", result.Invoice.Customer.Name)
}

func TestGenerateShortCircuitsOnParseFailure(t *testing.T) {
	parseErr := platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeExtraction, "oracle down", nil, "")
	parser := &stubParser{err: parseErr}
	payments := &stubPayments{}
	renderer := &stubRenderer{}
	svc := newPipeline(parser, payments, renderer)

	_, err := svc.Generate(context.Background(), GenerateRequest{Chats: []string{"order"}, UPIHandle: "shop@upi"})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExtraction))
	assert.Zero(t, payments.calls, "payment generator must not run after a parse failure")
	assert.Zero(t, renderer.calls, "renderer must not run after a parse failure")
}

func TestGenerateShortCircuitsOnPaymentFailure(t *testing.T) {
	paymentErr := platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeEncoding, "bad handle", nil, "")
	parser := &stubParser{items: parsedItems()}
	payments := &stubPayments{err: paymentErr}
	renderer := &stubRenderer{}
	svc := newPipeline(parser, payments, renderer)

	_, err := svc.Generate(context.Background(), GenerateRequest{Chats: []string{"order"}, UPIHandle: "bad"})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeEncoding))
	assert.Zero(t, renderer.calls, "renderer must not run after a payment failure")
}

func TestGeneratePropagatesRenderFailure(t *testing.T) {
	renderErr := platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeRender, "bad glyph", nil, "")
	parser := &stubParser{items: parsedItems()}
	payments := &stubPayments{intent: "x", png: []byte{1}}
	renderer := &stubRenderer{err: renderErr}
	svc := newPipeline(parser, payments, renderer)

	_, err := svc.Generate(context.Background(), GenerateRequest{Chats: []string{"order"}, UPIHandle: "shop@upi"})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeRender))
}

func TestPreviewSkipsPaymentAndRender(t *testing.T) {
	parser := &stubParser{items: parsedItems()}
	payments := &stubPayments{}
	renderer := &stubRenderer{}
	svc := newPipeline(parser, payments, renderer)

	inv, err := svc.Preview(context.Background(), []string{"2 margherita pizzas"})
	require.NoError(t, err)

	assert.True(t, inv.Total.Equal(decimal.RequireFromString("944.00")), "total = %s", inv.Total)
	assert.Equal(t, "N/A", inv.Customer.Name)
	assert.Empty(t, inv.PaymentReference)
	assert.Zero(t, payments.calls)
	assert.Zero(t, renderer.calls)
}

func TestMergeProfiles(t *testing.T) {
	defaults := BusinessProfile{Name: "A", Address: "B", Phone: "C", Email: "D", TaxID: "E"}

	tests := []struct {
		name      string
		overrides BusinessProfile
		want      BusinessProfile
	}{
		{"empty overrides keep defaults", BusinessProfile{}, defaults},
		{"single field", BusinessProfile{Name: "X"}, BusinessProfile{Name: "X", Address: "B", Phone: "C", Email: "D", TaxID: "E"}},
		{"all fields", BusinessProfile{Name: "1", Address: "2", Phone: "3", Email: "4", TaxID: "5"}, BusinessProfile{Name: "1", Address: "2", Phone: "3", Email: "4", TaxID: "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeProfiles(defaults, tt.overrides))
		})
	}
}

func TestValidateTranscript(t *testing.T) {
	tests := []struct {
		name    string
		chats   []string
		wantErr bool
	}{
		{"nil", nil, true},
		{"empty slice", []string{}, true},
		{"all empty strings", []string{"", ""}, true},
		{"one non-empty", []string{"", "pizza"}, false},
		{"valid", []string{"order please"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTranscript(context.Background(), tt.chats)
			if tt.wantErr {
				assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
