package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Minhaj401/invoice-generator-api/internal/config"
	"github.com/Minhaj401/invoice-generator-api/internal/domain/invoice"
	"github.com/Minhaj401/invoice-generator-api/internal/infrastructure/metrics"
	"github.com/Minhaj401/invoice-generator-api/internal/interfaces/httpserver/requests"
	"github.com/Minhaj401/invoice-generator-api/internal/interfaces/httpserver/responses"
	"github.com/Minhaj401/invoice-generator-api/internal/utils/platformerrors"
)

// InvoiceService is the pipeline surface the handler depends on.
type InvoiceService interface {
	Generate(ctx context.Context, req invoice.GenerateRequest) (*invoice.GeneratedInvoice, error)
	Preview(ctx context.Context, chats []string) (*invoice.Invoice, error)
}

// InvoiceHandler exposes the invoice endpoints.
type InvoiceHandler struct {
	cfg     *config.Config
	service InvoiceService
	log     zerolog.Logger
}

func NewInvoiceHandler(cfg *config.Config, service InvoiceService, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		cfg:     cfg,
		service: service,
		log:     log.With().Str("component", "invoice-handler").Logger(),
	}
}

// Generate godoc
// @Summary      Generate invoice
// @Description  Turns a chat transcript into a PDF invoice with an embedded UPI payment QR code.
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        request  body      requests.GenerateInvoiceRequest  true  "Invoice request"
// @Success      200      {file}    binary
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      503      {object}  responses.ErrorResponse
// @Router       /v1/invoices [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req requests.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Rejected before any external call is made.
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request: "+err.Error())
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.logFailure(c, err, "invoice generation failed")
		metrics.RecordInvoice("error", 0)
		responses.HandleError(c, err, "invoice generation failed")
		return
	}

	metrics.RecordInvoice("ok", len(result.Document))
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", result.Document)
}

// Preview godoc
// @Summary      Preview parsed items
// @Description  Parses the transcript and computes totals without rendering a document.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request  body      requests.PreviewRequest  true  "Preview request"
// @Success      200      {object}  responses.PreviewResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      503      {object}  responses.ErrorResponse
// @Router       /v1/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var req requests.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request: "+err.Error())
		return
	}

	inv, err := h.service.Preview(c.Request.Context(), req.Chats)
	if err != nil {
		h.logFailure(c, err, "invoice preview failed")
		responses.HandleError(c, err, "invoice preview failed")
		return
	}

	c.JSON(http.StatusOK, responses.NewPreviewResponse(inv))
}

func (h *InvoiceHandler) logFailure(c *gin.Context, err error, message string) {
	if platformErr, ok := err.(*platformerrors.PlatformError); ok {
		platformerrors.LogError(h.log, platformErr)
		return
	}
	h.log.Error().Err(err).Msg(message)
}
