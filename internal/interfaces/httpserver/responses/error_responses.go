package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Minhaj401/invoice-generator-api/internal/utils/platformerrors"
)

// ErrorResponse represents an error response with platform error details.
// Internal diagnostic detail stays in the logs; the body only carries the
// failure kind and a short message.
type ErrorResponse struct {
	Code      string `json:"code"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError maps domain errors onto HTTP responses by their failure kind
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		errorMessage := domainErr.Message
		if errorMessage == "" {
			errorMessage = message
		}

		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Code:      domainErr.GetUUID(),
			Kind:      string(domainErr.GetErrorType()),
			Error:     errorMessage,
			RequestID: domainErr.GetRequestID(),
		})
		return
	}

	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Kind:  string(platformerrors.ErrorTypeInternal),
		Error: message,
	})
}

// HandleNewError creates a new typed error at the route layer and handles it
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string) {
	ctx := reqCtx.Request.Context()
	err := platformerrors.NewError(ctx, platformerrors.LayerRoute, errorType, message, nil, "")

	reqCtx.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(errorType), ErrorResponse{
		Code:      err.GetUUID(),
		Kind:      string(errorType),
		Error:     message,
		RequestID: err.GetRequestID(),
	})
}
