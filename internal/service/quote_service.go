package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bonfilet/quoteapi/internal/cache"
	"github.com/bonfilet/quoteapi/internal/catalog"
	"github.com/bonfilet/quoteapi/internal/currency"
	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/internal/eta"
	"github.com/bonfilet/quoteapi/internal/pricing"
	"github.com/bonfilet/quoteapi/internal/repository"
)

type QuoteService struct {
	provider catalog.Provider
	parser   *Parser
	engine   *pricing.Engine
	repos    *repository.Repositories
	quotes   cache.QuoteCache
	logger   *zap.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(provider catalog.Provider, converter *currency.Converter, repos *repository.Repositories, quotes cache.QuoteCache, logger *zap.Logger) *QuoteService {
	// A cached quote would hide edits to catalog files that are re-read on every access
	if b, ok := provider.(interface{ Bypass() bool }); ok && b.Bypass() {
		quotes = cache.NopQuoteCache{}
	}
	return &QuoteService{
		provider: provider,
		parser:   NewParser(provider, logger),
		engine:   pricing.NewEngine(converter, logger),
		repos:    repos,
		quotes:   quotes,
		logger:   logger,
	}
}

// Parser exposes the request parser
func (s *QuoteService) Parser() *Parser {
	return s.parser
}

// Engine exposes the pricing engine
func (s *QuoteService) Engine() *pricing.Engine {
	return s.engine
}

// CreateQuote parses a raw JSON request and prices it.
// Validation failures come back as *errors.ErrValidation.
func (s *QuoteService) CreateQuote(ctx context.Context, raw []byte) (*domain.QuoteResult, error) {
	parsed, err := s.parser.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}

	fingerprint, err := cache.Fingerprint(parsed)
	if err != nil {
		return nil, err
	}
	if cached, ok, err := s.quotes.Get(ctx, fingerprint); err == nil && ok {
		s.logger.Debug("Serving cached quote", zap.String("quote_id", cached.ID.String()))
		return cached, nil
	}

	result, err := s.Quote(ctx, parsed)
	if err != nil {
		return nil, err
	}

	// Cache and log failures do not fail the quote
	if err := s.quotes.Set(ctx, fingerprint, result); err != nil {
		s.logger.Warn("Failed to cache quote", zap.Error(err))
	}
	if err := s.repos.QuoteLog.Create(ctx, summarize(result, parsed, fingerprint)); err != nil {
		s.logger.Warn("Failed to log quote", zap.String("quote_id", result.ID.String()), zap.Error(err))
	}
	return result, nil
}

// GetQuote returns the logged summary of an issued quote
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*domain.QuoteLog, error) {
	return s.repos.QuoteLog.GetByID(ctx, id)
}

func summarize(result *domain.QuoteResult, parsed *domain.ParsedQuoteRequest, fingerprint string) *domain.QuoteLog {
	totalQty := 0
	for _, item := range parsed.Items {
		totalQty += item.Qty
	}
	return &domain.QuoteLog{
		ID:          result.ID,
		RequestHash: fingerprint,
		Country:     parsed.Country,
		Currency:    result.Currency,
		ItemCount:   len(parsed.Items),
		TotalQty:    totalQty,
		Total:       result.Total,
		NeedsReview: result.NeedsReview,
		ETAMin:      result.ETA.Min,
		ETAMax:      result.ETA.Max,
	}
}

// Quote prices a parsed request and estimates its delivery window.
// Pricing and ETA run concurrently; if either fails the whole quote fails.
func (s *QuoteService) Quote(ctx context.Context, parsed *domain.ParsedQuoteRequest) (*domain.QuoteResult, error) {
	var (
		breakdown *domain.QuoteBreakdown
		window    domain.ETAWindow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfg, err := s.provider.PricingConfig(gctx)
		if err != nil {
			return err
		}
		breakdown, err = s.engine.Price(cfg, parsed)
		return err
	})
	g.Go(func() error {
		cfg, err := s.provider.LeadTimeConfig(gctx)
		if err != nil {
			return err
		}
		window = eta.Estimate(cfg, parsed.Country)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	errs := parsed.Errors
	if errs == nil {
		errs = []string{}
	}
	result := &domain.QuoteResult{
		ID:             uuid.New(),
		QuoteBreakdown: *breakdown,
		ETA:            window,
		NeedsReview:    parsed.NeedsReview,
		Errors:         errs,
	}

	s.logger.Debug("Quote created",
		zap.String("quote_id", result.ID.String()),
		zap.String("currency", string(result.Currency)),
		zap.String("total", result.Total.String()),
		zap.Int("eta_min", window.Min),
		zap.Int("eta_max", window.Max),
		zap.Bool("needs_review", result.NeedsReview),
	)
	return result, nil
}
