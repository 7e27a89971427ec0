package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/internal/service"
)

// QuoteResponse represents a priced quote
type QuoteResponse struct {
	QuoteID     string          `json:"quoteId"`
	Currency    domain.Currency `json:"currency"`
	Subtotal    json.RawMessage `json:"subtotal"`
	Shipping    json.RawMessage `json:"shipping"`
	Tax         json.RawMessage `json:"tax"`
	Duties      json.RawMessage `json:"duties"`
	Total       json.RawMessage `json:"total"`
	ETADays     [2]int          `json:"etaDays"`
	NeedsReview bool            `json:"needsReview"`
	Errors      []string        `json:"errors"`
	Lines       []LineResponse  `json:"lines"`
}

type LineResponse struct {
	Index          int             `json:"index"`
	Qty            int             `json:"qty"`
	UnitPrice      json.RawMessage `json:"unitPrice"`
	OptionsPerUnit json.RawMessage `json:"optionsPerUnit"`
	LineTotal      json.RawMessage `json:"lineTotal"`
}

// QuoteLogResponse is the stored summary of an issued quote
type QuoteLogResponse struct {
	QuoteID     string          `json:"quoteId"`
	Country     string          `json:"country"`
	Currency    domain.Currency `json:"currency"`
	ItemCount   int             `json:"itemCount"`
	TotalQty    int             `json:"totalQty"`
	Total       json.RawMessage `json:"total"`
	ETADays     [2]int          `json:"etaDays"`
	NeedsReview bool            `json:"needsReview"`
	CreatedAt   string          `json:"createdAt"`
}

func toQuoteResponse(q *domain.QuoteResult) QuoteResponse {
	errs := q.Errors
	if errs == nil {
		errs = []string{}
	}
	resp := QuoteResponse{
		QuoteID:     q.ID.String(),
		Currency:    q.Currency,
		Subtotal:    money(q.Subtotal, q.Currency),
		Shipping:    money(q.Shipping, q.Currency),
		Tax:         money(q.Tax, q.Currency),
		Duties:      money(q.Duties, q.Currency),
		Total:       money(q.Total, q.Currency),
		ETADays:     [2]int{q.ETA.Min, q.ETA.Max},
		NeedsReview: q.NeedsReview,
		Errors:      errs,
		Lines:       make([]LineResponse, 0, len(q.Lines)),
	}
	for _, l := range q.Lines {
		resp.Lines = append(resp.Lines, LineResponse{
			Index:          l.Index,
			Qty:            l.Qty,
			UnitPrice:      money(l.UnitPrice, q.Currency),
			OptionsPerUnit: money(l.OptionsPerUnit, q.Currency),
			LineTotal:      money(l.LineTotal, q.Currency),
		})
	}
	return resp
}

// HandleCreateQuote handles POST /v1/quotes
func HandleCreateQuote(quotes *service.QuoteService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			respondError(c, err, logger)
			return
		}

		result, err := quotes.CreateQuote(c.Request.Context(), raw)
		if err != nil {
			respondError(c, err, logger)
			return
		}

		c.JSON(http.StatusOK, toQuoteResponse(result))
	}
}

// HandleGetQuote handles GET /v1/quotes/:id
func HandleGetQuote(quotes *service.QuoteService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid quote ID"})
			return
		}

		log, err := quotes.GetQuote(c.Request.Context(), quoteID)
		if err != nil {
			respondError(c, err, logger)
			return
		}

		c.JSON(http.StatusOK, QuoteLogResponse{
			QuoteID:     log.ID.String(),
			Country:     log.Country,
			Currency:    log.Currency,
			ItemCount:   log.ItemCount,
			TotalQty:    log.TotalQty,
			Total:       money(log.Total, log.Currency),
			ETADays:     [2]int{log.ETAMin, log.ETAMax},
			NeedsReview: log.NeedsReview,
			CreatedAt:   log.CreatedAt.Format(time.RFC3339),
		})
	}
}
