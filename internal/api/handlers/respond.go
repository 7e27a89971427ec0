package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/api/middleware"
	"github.com/bonfilet/quoteapi/internal/currency"
	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/pkg/errors"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Message     string              `json:"message"`
	Errors      []errors.FieldIssue `json:"errors,omitempty"`
	NeedsReview bool                `json:"needsReview"`
}

const internalErrorMessage = "Internal Server Error"

// respondError maps service errors onto HTTP responses.
// Anything unrecognized is logged and reported as a generic 500.
func respondError(c *gin.Context, err error, logger *zap.Logger) {
	if verr, ok := errors.AsValidation(err); ok {
		c.JSON(verr.Status, ErrorResponse{Message: verr.Message, Errors: verr.Issues})
		return
	}
	if errors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
		return
	}
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Message: "Request body too large"})
		return
	}

	fields := []zap.Field{
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	}
	if cerr, ok := errors.AsConfigLoad(err); ok {
		fields = append(fields, zap.String("resource", cerr.Resource))
	}
	logger.Error("Request failed", fields...)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: internalErrorMessage})
}

// money renders an amount as a bare JSON number with the currency's precision
func money(amount decimal.Decimal, code domain.Currency) json.RawMessage {
	return json.RawMessage(amount.StringFixed(currency.Decimals(code)))
}
