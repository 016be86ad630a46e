package requests

import (
	"github.com/Minhaj401/invoice-generator-api/internal/domain/invoice"
)

// GenerateInvoiceRequest represents an invoice generation request
type GenerateInvoiceRequest struct {
	Chats     []string `json:"chats" binding:"required,min=1"`
	UPIID     string   `json:"upi_id" binding:"required"`
	PayeeName string   `json:"payee_name"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`

	// Optional per-request overrides of the default business profile
	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address"`
	BusinessPhone   string `json:"business_phone"`
	BusinessEmail   string `json:"business_email" binding:"omitempty,email"`
	BusinessGST     string `json:"business_gst"`
}

// ToDomain converts request to domain model
func (r *GenerateInvoiceRequest) ToDomain() invoice.GenerateRequest {
	return invoice.GenerateRequest{
		Chats:     r.Chats,
		UPIHandle: r.UPIID,
		PayeeName: r.PayeeName,
		Customer: invoice.CustomerProfile{
			Name:  r.CustomerName,
			Phone: r.CustomerPhone,
			Email: r.CustomerEmail,
		},
		Overrides: invoice.BusinessProfile{
			Name:    r.BusinessName,
			Address: r.BusinessAddress,
			Phone:   r.BusinessPhone,
			Email:   r.BusinessEmail,
			TaxID:   r.BusinessGST,
		},
	}
}

// PreviewRequest represents a parse-only request
type PreviewRequest struct {
	Chats []string `json:"chats" binding:"required,min=1"`
}
