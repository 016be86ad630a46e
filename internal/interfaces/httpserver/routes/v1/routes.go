package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Minhaj401/invoice-generator-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")
	group.POST("/invoices", r.handlers.Invoice.Generate)
	group.POST("/invoices/preview", r.handlers.Invoice.Preview)
}
