package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ExtractedItem is one raw record returned by the extraction service. The
// service is an untrusted oracle: fields stay as json.Number until the
// parser has validated and coerced them.
type ExtractedItem struct {
	Description string      `json:"description"`
	Quantity    json.Number `json:"quantity"`
	UnitPrice   json.Number `json:"unit_price"`
}

// Extractor converts a chat transcript into raw purchase records. The
// transcript is submitted whole so later messages can amend earlier ones.
type Extractor interface {
	ExtractItems(ctx context.Context, transcript []string) ([]ExtractedItem, error)
}

// FailureKind distinguishes the ways an extraction call can fail.
type FailureKind string

const (
	FailureTimeout  FailureKind = "timeout"
	FailureUpstream FailureKind = "upstream"
	FailureSchema   FailureKind = "schema"
)

// ExtractionFailure carries the failure kind alongside the underlying error.
type ExtractionFailure struct {
	Kind FailureKind
	Err  error
}

func (e *ExtractionFailure) Error() string {
	return fmt.Sprintf("extraction %s failure: %v", e.Kind, e.Err)
}

func (e *ExtractionFailure) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is an extraction failure worth one retry.
// Schema violations are never transient: the oracle answered, just wrongly.
func IsTransient(err error) bool {
	var failure *ExtractionFailure
	if !errors.As(err, &failure) {
		return false
	}
	return failure.Kind == FailureTimeout || failure.Kind == FailureUpstream
}
