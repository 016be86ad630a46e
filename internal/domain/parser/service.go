package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Minhaj401/invoice-generator-api/internal/domain/invoice"
	"github.com/Minhaj401/invoice-generator-api/internal/infrastructure/metrics"
	"github.com/Minhaj401/invoice-generator-api/internal/utils/platformerrors"
	"github.com/Minhaj401/invoice-generator-api/internal/utils/retry"
)

// Service turns a chat transcript into validated invoice line items.
type Service struct {
	extractor   Extractor
	retryPolicy retry.Policy
	log         zerolog.Logger
}

// NewService builds the parser service. retryPolicy bounds retries of
// transient extraction failures; schema violations are never retried.
func NewService(extractor Extractor, retryPolicy retry.Policy, log zerolog.Logger) *Service {
	return &Service{
		extractor:   extractor,
		retryPolicy: retryPolicy,
		log:         log.With().Str("component", "chat-parser").Logger(),
	}
}

// Parse submits the full transcript to the extraction service and validates
// every returned record before it may enter any arithmetic.
func (s *Service) Parse(ctx context.Context, transcript []string) ([]invoice.LineItem, error) {
	if err := invoice.ValidateTranscript(ctx, transcript); err != nil {
		return nil, err
	}

	extracted, err := retry.ExecuteWithResult(ctx, s.retryPolicy,
		func(ctx context.Context, attempt int) ([]ExtractedItem, error) {
			if attempt > 0 {
				s.log.Warn().Int("attempt", attempt).Msg("retrying extraction call")
				metrics.ExtractionRetriesTotal.Inc()
			}
			return s.extractor.ExtractItems(ctx, transcript)
		},
		IsTransient,
	)
	if err != nil {
		return nil, s.wrapExtractionError(ctx, err)
	}

	items := make([]invoice.LineItem, 0, len(extracted))
	for i, record := range extracted {
		item, err := validateRecord(record)
		if err != nil {
			return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExtraction,
				fmt.Sprintf("extraction record %d failed validation", i), err, "",
				map[string]any{"kind": string(FailureSchema)})
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		// The oracle answered but found nothing purchasable: a caller problem,
		// not a service one.
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"no purchase items found in chat transcript", nil, "")
	}

	s.log.Debug().Int("items", len(items)).Msg("transcript parsed")
	return items, nil
}

func (s *Service) wrapExtractionError(ctx context.Context, err error) error {
	kind := FailureUpstream
	var failure *ExtractionFailure
	if errors.As(err, &failure) {
		kind = failure.Kind
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExtraction,
		fmt.Sprintf("chat extraction failed (%s)", kind), err, "",
		map[string]any{"kind": string(kind)})
}

// validateRecord schema-checks and numerically coerces one oracle record.
// Nothing is silently defaulted: a missing or malformed field rejects the
// whole parse.
func validateRecord(record ExtractedItem) (invoice.LineItem, error) {
	description := strings.TrimSpace(record.Description)
	if description == "" {
		return invoice.LineItem{}, errors.New("missing description")
	}
	if record.Quantity == "" {
		return invoice.LineItem{}, errors.New("missing quantity")
	}
	if record.UnitPrice == "" {
		return invoice.LineItem{}, errors.New("missing unit_price")
	}

	quantity, err := decimal.NewFromString(record.Quantity.String())
	if err != nil {
		return invoice.LineItem{}, fmt.Errorf("non-numeric quantity %q", record.Quantity)
	}
	unitPrice, err := decimal.NewFromString(record.UnitPrice.String())
	if err != nil {
		return invoice.LineItem{}, fmt.Errorf("non-numeric unit_price %q", record.UnitPrice)
	}

	if quantity.Sign() <= 0 {
		return invoice.LineItem{}, fmt.Errorf("quantity must be positive, got %s", quantity)
	}
	if unitPrice.Sign() < 0 {
		return invoice.LineItem{}, fmt.Errorf("unit_price must be non-negative, got %s", unitPrice)
	}

	return invoice.LineItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}, nil
}
