package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/service"
	"github.com/bonfilet/quoteapi/pkg/errors"
)

// ValidateMessageRequest represents the live message check payload
type ValidateMessageRequest struct {
	MessageText *string `json:"messageText" binding:"required"`
}

// HandleValidateMessage handles POST /v1/messages/validate
func HandleValidateMessage(catalogs *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidateMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if stderrors.As(err, &tooLarge) {
				respondError(c, err, logger)
				return
			}
			respondError(c, errors.NewValidation([]errors.FieldIssue{{
				Field:   "messageText",
				Message: "messageText is required",
			}}), logger)
			return
		}

		result, err := catalogs.ValidateMessage(c.Request.Context(), *req.MessageText)
		if err != nil {
			respondError(c, err, logger)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
