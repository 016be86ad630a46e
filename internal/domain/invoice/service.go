package invoice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Minhaj401/invoice-generator-api/internal/utils/platformerrors"
)

// Parser converts a chat transcript into validated line items.
type Parser interface {
	Parse(ctx context.Context, transcript []string) ([]LineItem, error)
}

// PaymentGenerator builds a payment-intent string and its QR image.
type PaymentGenerator interface {
	Generate(ctx context.Context, handle, payeeName string, amount decimal.Decimal, invoiceNumber string) (string, []byte, error)
}

// Renderer lays an invoice out as document bytes.
type Renderer interface {
	Render(ctx context.Context, inv *Invoice, qrPNG []byte) ([]byte, error)
}

// GenerateRequest is the orchestrator input, already bound and
// request-validated by the transport layer.
type GenerateRequest struct {
	Chats     []string
	UPIHandle string
	PayeeName string
	Customer  CustomerProfile
	Overrides BusinessProfile
}

// GeneratedInvoice is the pipeline output.
type GeneratedInvoice struct {
	Invoice  *Invoice
	Document []byte
	Filename string
}

// Service sequences parsing, computation, payment-code generation and
// rendering. It short-circuits on the first failure and propagates the
// failure kind unchanged; no component has persistent side effects, so no
// rollback is ever needed.
type Service struct {
	defaults BusinessProfile
	parser   Parser
	computer *Computer
	payments PaymentGenerator
	renderer Renderer
	log      zerolog.Logger
	now      func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(defaults BusinessProfile, parser Parser, computer *Computer, payments PaymentGenerator, renderer Renderer, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		defaults: defaults,
		parser:   parser,
		computer: computer,
		payments: payments,
		renderer: renderer,
		log:      log.With().Str("component", "invoice-service").Logger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs the full pipeline and returns the rendered document.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GeneratedInvoice, error) {
	items, err := s.parser.Parse(ctx, req.Chats)
	if err != nil {
		return nil, err
	}

	seller := MergeProfiles(s.defaults, req.Overrides)
	customer := normalizeCustomer(req.Customer)

	inv, err := s.computer.Compute(ctx, items, seller, customer, s.now())
	if err != nil {
		return nil, err
	}

	payeeName := req.PayeeName
	if payeeName == "" {
		payeeName = seller.Name
	}
	intent, qrPNG, err := s.payments.Generate(ctx, req.UPIHandle, payeeName, inv.Total, inv.Number)
	if err != nil {
		return nil, err
	}
	inv.PaymentReference = intent

	document, err := s.renderer.Render(ctx, inv, qrPNG)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("invoice_number", inv.Number).
		Int("items", len(inv.Items)).
		Str("total", inv.Total.StringFixed(2)).
		Int("document_bytes", len(document)).
		Msg("invoice generated")

	return &GeneratedInvoice{
		Invoice:  inv,
		Document: document,
		Filename: "invoice_" + inv.Number + ".pdf",
	}, nil
}

// Preview runs parsing and computation only, without payment code or
// document rendering.
func (s *Service) Preview(ctx context.Context, chats []string) (*Invoice, error) {
	items, err := s.parser.Parse(ctx, chats)
	if err != nil {
		return nil, err
	}
	inv, err := s.computer.Compute(ctx, items, s.defaults, CustomerProfile{Name: "N/A"}, s.now())
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// MergeProfiles overlays the non-empty fields of overrides onto defaults,
// field by field, never replacing the whole object.
func MergeProfiles(defaults, overrides BusinessProfile) BusinessProfile {
	merged := defaults
	if overrides.Name != "" {
		merged.Name = overrides.Name
	}
	if overrides.Address != "" {
		merged.Address = overrides.Address
	}
	if overrides.Phone != "" {
		merged.Phone = overrides.Phone
	}
	if overrides.Email != "" {
		merged.Email = overrides.Email
	}
	if overrides.TaxID != "" {
		merged.TaxID = overrides.TaxID
	}
	return merged
}

func normalizeCustomer(c CustomerProfile) CustomerProfile {
	if c.Name == "" {
		c.Name = "N/A"
	}
	return c
}

// ValidateTranscript rejects empty transcripts before any external call.
func ValidateTranscript(ctx context.Context, chats []string) error {
	if len(chats) == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"chats must contain at least one message", nil, "")
	}
	for _, chat := range chats {
		if chat != "" {
			return nil
		}
	}
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
		"chats must contain at least one non-empty message", nil, "")
}
