// Package idgen generates invoice identifiers.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

const (
	invoicePrefix = "INV"
	suffixCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffixLength  = 4
)

var invoiceNumberPattern = regexp.MustCompile(`^INV-\d{6}-[0-9A-Z]{4}$`)

// InvoiceNumber returns an identifier of the form INV-YYYYMM-XXXX where the
// suffix is drawn from crypto/rand. Requests are stateless, so the suffix must
// not depend on any shared counter; concurrent workers never coordinate.
func InvoiceNumber(now time.Time) (string, error) {
	suffix := make([]byte, suffixLength)
	max := big.NewInt(int64(len(suffixCharset)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate invoice suffix: %w", err)
		}
		suffix[i] = suffixCharset[n.Int64()]
	}
	return fmt.Sprintf("%s-%s-%s", invoicePrefix, now.Format("200601"), suffix), nil
}

// ValidInvoiceNumber reports whether s matches the INV-YYYYMM-XXXX format.
func ValidInvoiceNumber(s string) bool {
	return invoiceNumberPattern.MatchString(s)
}
