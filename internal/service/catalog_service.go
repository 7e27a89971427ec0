package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/catalog"
	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/internal/eta"
	"github.com/bonfilet/quoteapi/internal/message"
	"github.com/bonfilet/quoteapi/internal/pricing"
)

// CatalogService answers read-only catalog lookups used by the order form
type CatalogService struct {
	provider catalog.Provider
	engine   *pricing.Engine
	logger   *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(provider catalog.Provider, engine *pricing.Engine, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		provider: provider,
		engine:   engine,
		logger:   logger,
	}
}

// PriceTable returns the pricing config together with every tier priced in every display currency
func (s *CatalogService) PriceTable(ctx context.Context) (*catalog.PricingConfig, []pricing.TierRow, error) {
	cfg, err := s.provider.PricingConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.engine.PriceTable(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rows, nil
}

func (s *CatalogService) Colors(ctx context.Context) (*catalog.ColorConfig, error) {
	return s.provider.ColorConfig(ctx)
}

// EstimateETA returns the delivery window for a destination country
func (s *CatalogService) EstimateETA(ctx context.Context, country string) (domain.ETAWindow, error) {
	cfg, err := s.provider.LeadTimeConfig(ctx)
	if err != nil {
		return domain.ETAWindow{}, err
	}
	return eta.Estimate(cfg, country), nil
}

// ValidateMessage runs the message checks on a single band text
func (s *CatalogService) ValidateMessage(ctx context.Context, text string) (message.Result, error) {
	words, err := s.provider.ForbiddenWords(ctx)
	if err != nil {
		return message.Result{}, err
	}
	return message.NewValidator(words).Validate(text), nil
}
