package handlers

import (
	"github.com/rs/zerolog"

	"github.com/Minhaj401/invoice-generator-api/internal/config"
)

// Provider groups handler instances for route registration.
type Provider struct {
	Invoice *InvoiceHandler
}

func NewProvider(cfg *config.Config, service InvoiceService, log zerolog.Logger) *Provider {
	return &Provider{
		Invoice: NewInvoiceHandler(cfg, service, log),
	}
}
