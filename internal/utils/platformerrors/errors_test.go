package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestNewErrorGeneratesUUID(t *testing.T) {
	err := NewError(context.Background(), LayerDomain, ErrorTypeValidation, "bad input", nil, "")
	if err.UUID == "" {
		t.Error("expected auto-generated UUID, got empty string")
	}
	if err.Type != ErrorTypeValidation {
		t.Errorf("Type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Layer != LayerDomain {
		t.Errorf("Layer = %v, want %v", err.Layer, LayerDomain)
	}
}

func TestNewErrorPicksUpRequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), "requestID", "req-123") //nolint:staticcheck
	err := NewError(ctx, LayerHandler, ErrorTypeInternal, "boom", nil, "")
	if err.RequestID != "req-123" {
		t.Errorf("RequestID = %q, want req-123", err.RequestID)
	}
}

func TestAsErrorPreservesTypeAndUUID(t *testing.T) {
	inner := NewError(context.Background(), LayerDomain, ErrorTypeExtraction, "oracle unreachable", errors.New("dial timeout"), "")

	wrapped := AsError(context.Background(), LayerHandler, inner, "generate invoice")
	if wrapped.Type != ErrorTypeExtraction {
		t.Errorf("Type = %v, want %v", wrapped.Type, ErrorTypeExtraction)
	}
	if wrapped.UUID != inner.UUID {
		t.Errorf("UUID = %q, want inner UUID %q", wrapped.UUID, inner.UUID)
	}
	if !errors.Is(wrapped, inner) {
		t.Error("wrapped error should unwrap to the inner error")
	}
}

func TestAsErrorWrapsPlainError(t *testing.T) {
	plain := errors.New("disk full")
	wrapped := AsError(context.Background(), LayerInfrastructure, plain, "write output")
	if wrapped.Type != ErrorTypeInternal {
		t.Errorf("Type = %v, want %v", wrapped.Type, ErrorTypeInternal)
	}
	if !errors.Is(wrapped, plain) {
		t.Error("wrapped error should unwrap to the plain error")
	}
}

func TestAsErrorNil(t *testing.T) {
	if got := AsError(context.Background(), LayerDomain, nil, "noop"); got != nil {
		t.Errorf("AsError(nil) = %v, want nil", got)
	}
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeExtraction, http.StatusServiceUnavailable},
		{ErrorTypeComputation, http.StatusInternalServerError},
		{ErrorTypeRender, http.StatusInternalServerError},
		{ErrorTypeEncoding, http.StatusInternalServerError},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("UNKNOWN"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			if got := ErrorTypeToHTTPStatus(tt.errorType); got != tt.want {
				t.Errorf("ErrorTypeToHTTPStatus(%v) = %d, want %d", tt.errorType, got, tt.want)
			}
		})
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewError(context.Background(), LayerDomain, ErrorTypeRender, "bad glyph", nil, "")
	if !IsErrorType(err, ErrorTypeRender) {
		t.Error("IsErrorType should match the error's own type")
	}
	if IsErrorType(err, ErrorTypeValidation) {
		t.Error("IsErrorType should not match a different type")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeRender) {
		t.Error("IsErrorType should reject non-platform errors")
	}
	if IsErrorType(nil, ErrorTypeRender) {
		t.Error("IsErrorType should reject nil")
	}
}
