package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/catalog"
	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/internal/service"
)

// PricingResponse is the public pricing table
type PricingResponse struct {
	BaseCurrency domain.Currency            `json:"baseCurrency"`
	Tiers        []TierResponse             `json:"tiers"`
	Options      map[string]json.RawMessage `json:"options"`
	Coeff        catalog.Coefficients       `json:"coeff"`
}

type TierResponse struct {
	Min        int                                 `json:"min"`
	Max        int                                 `json:"max"`
	UnitPrices map[domain.Currency]json.RawMessage `json:"unitPrices"`
}

// ETAResponse is the delivery window for one destination
type ETAResponse struct {
	Country string `json:"country"`
	ETADays [2]int `json:"etaDays"`
	Zone    int    `json:"zone"`
	Mapped  bool   `json:"mapped"`
}

// HandleGetPricing handles GET /v1/pricing
func HandleGetPricing(catalogs *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, rows, err := catalogs.PriceTable(c.Request.Context())
		if err != nil {
			respondError(c, err, logger)
			return
		}

		resp := PricingResponse{
			BaseCurrency: domain.BaseCurrency,
			Tiers:        make([]TierResponse, 0, len(rows)),
			Options:      make(map[string]json.RawMessage, len(cfg.Options)),
			Coeff:        cfg.Coeff,
		}
		for _, row := range rows {
			tier := TierResponse{
				Min:        row.Min,
				Max:        row.Max,
				UnitPrices: make(map[domain.Currency]json.RawMessage, len(row.Prices)),
			}
			for _, p := range row.Prices {
				tier.UnitPrices[p.Currency] = money(p.Unit, p.Currency)
			}
			resp.Tiers = append(resp.Tiers, tier)
		}
		for id, price := range cfg.Options {
			resp.Options[id] = money(price, domain.BaseCurrency)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleGetColors handles GET /v1/colors
func HandleGetColors(catalogs *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		colors, err := catalogs.Colors(c.Request.Context())
		if err != nil {
			respondError(c, err, logger)
			return
		}
		c.JSON(http.StatusOK, colors)
	}
}

// HandleGetETA handles GET /v1/eta/:country
func HandleGetETA(catalogs *service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		country := strings.ToUpper(strings.TrimSpace(c.Param("country")))
		if len(country) < 2 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "country must be at least 2 characters"})
			return
		}

		window, err := catalogs.EstimateETA(c.Request.Context(), country)
		if err != nil {
			respondError(c, err, logger)
			return
		}

		c.JSON(http.StatusOK, ETAResponse{
			Country: country,
			ETADays: [2]int{window.Min, window.Max},
			Zone:    window.Zone,
			Mapped:  window.Mapped,
		})
	}
}
