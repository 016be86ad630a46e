package payment

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Minhaj401/invoice-generator-api/internal/utils/platformerrors"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestIntentString(t *testing.T) {
	g := NewGenerator("INR")

	intent, err := g.IntentString(context.Background(), "merchant@upi", "Pizza Palace", decimal.RequireFromString("1357"), "INV-202603-A1B2")
	if err != nil {
		t.Fatalf("IntentString() error = %v", err)
	}

	if !strings.HasPrefix(intent, "upi://pay?") {
		t.Errorf("intent = %q, want upi://pay prefix", intent)
	}
	for _, part := range []string{
		"pa=merchant@upi",
		"pn=Pizza+Palace",
		"am=1357.00",
		"cu=INR",
		"tn=Payment+for+Invoice+INV-202603-A1B2",
	} {
		if !strings.Contains(intent, part) {
			t.Errorf("intent %q missing %q", intent, part)
		}
	}
}

func TestIntentStringEscapesPayeeName(t *testing.T) {
	g := NewGenerator("INR")

	intent, err := g.IntentString(context.Background(), "merchant@upi", "Tom & Jerry", decimal.RequireFromString("10"), "INV-202601-0001")
	if err != nil {
		t.Fatalf("IntentString() error = %v", err)
	}
	if !strings.Contains(intent, "pn=Tom+%26+Jerry") {
		t.Errorf("intent %q does not escape ampersand in payee name", intent)
	}

	// An unescaped & would smuggle in a sixth parameter.
	params := strings.Split(strings.TrimPrefix(intent, "upi://pay?"), "&")
	if len(params) != 5 {
		t.Errorf("intent has %d parameters, want 5: %q", len(params), intent)
	}
	for _, param := range params {
		key := strings.SplitN(param, "=", 2)[0]
		switch key {
		case "pa", "pn", "am", "cu", "tn":
		default:
			t.Errorf("unexpected parameter %q in intent %q", key, intent)
		}
	}
}

func TestIntentStringAlwaysTwoDecimals(t *testing.T) {
	g := NewGenerator("INR")
	tests := []struct {
		amount string
		want   string
	}{
		{"100", "am=100.00"},
		{"99.9", "am=99.90"},
		{"0.05", "am=0.05"},
		{"1357.5", "am=1357.50"},
	}
	for _, tt := range tests {
		intent, err := g.IntentString(context.Background(), "shop@okaxis", "Shop", decimal.RequireFromString(tt.amount), "INV-202601-0001")
		if err != nil {
			t.Fatalf("IntentString(%s) error = %v", tt.amount, err)
		}
		if !strings.Contains(intent, tt.want) {
			t.Errorf("intent %q missing %q", intent, tt.want)
		}
	}
}

func TestIntentStringRejectsBadHandles(t *testing.T) {
	g := NewGenerator("INR")
	tests := []struct {
		name   string
		handle string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no at sign", "merchantupi"},
		{"missing psp", "merchant@"},
		{"numeric psp", "merchant@123"},
		{"leading dot", ".merchant@upi"},
		{"spaces inside", "mer chant@upi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.IntentString(context.Background(), tt.handle, "Shop", decimal.RequireFromString("10"), "INV-202601-0001")
			if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeEncoding) {
				t.Fatalf("error = %v, want ENCODING", err)
			}
		})
	}
}

func TestQRCodeProducesPNG(t *testing.T) {
	g := NewGenerator("INR")

	png, err := g.QRCode(context.Background(), "upi://pay?pa=merchant@upi&am=10.00&cu=INR")
	if err != nil {
		t.Fatalf("QRCode() error = %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Errorf("QRCode() output missing PNG signature, got % x", png[:8])
	}
}

func TestGenerate(t *testing.T) {
	g := NewGenerator("INR")

	intent, png, err := g.Generate(context.Background(), "merchant@upi", "Pizza Palace", decimal.RequireFromString("1357"), "INV-202603-A1B2")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if intent == "" {
		t.Error("Generate() returned empty intent")
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("Generate() returned non-PNG bytes")
	}
}

func TestGenerateShortCircuitsOnBadHandle(t *testing.T) {
	g := NewGenerator("INR")

	intent, png, err := g.Generate(context.Background(), "not-a-handle", "Shop", decimal.RequireFromString("10"), "INV-202601-0001")
	if err == nil {
		t.Fatal("Generate() error = nil, want ENCODING")
	}
	if intent != "" || png != nil {
		t.Error("Generate() should return no partial output on failure")
	}
}
