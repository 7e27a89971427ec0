package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/catalog"
	"github.com/bonfilet/quoteapi/internal/currency"
	"github.com/bonfilet/quoteapi/internal/domain"
)

// Engine computes quote breakdowns from the pricing config
type Engine struct {
	converter *currency.Converter
	logger    *zap.Logger
}

// NewEngine creates a pricing engine
func NewEngine(converter *currency.Converter, logger *zap.Logger) *Engine {
	return &Engine{
		converter: converter,
		logger:    logger,
	}
}

// FindTier returns the tier containing qty, or the tier with the greatest max
func FindTier(tiers []catalog.PricingTier, qty int) (catalog.PricingTier, bool) {
	if len(tiers) == 0 {
		return catalog.PricingTier{}, false
	}
	for _, t := range tiers {
		if qty >= t.Min && qty <= t.Max {
			return t, true
		}
	}
	overflow := tiers[0]
	for _, t := range tiers[1:] {
		if t.Max > overflow.Max {
			overflow = t
		}
	}
	return overflow, true
}

// UnitPrice is the base-currency price of one band before options
func UnitPrice(cfg *catalog.PricingConfig, item domain.ParsedItem) (decimal.Decimal, error) {
	tier, ok := FindTier(cfg.Tiers, item.Qty)
	if !ok {
		return decimal.Zero, fmt.Errorf("pricing config has no tiers")
	}
	return tier.Unit.
		Mul(cfg.FinishCoefficient(item.Finish)).
		Mul(cfg.SizeCoefficient(item.Size)), nil
}

// OptionsPerUnit sums the add-on prices for one band; unknown ids add nothing
func OptionsPerUnit(cfg *catalog.PricingConfig, options []string) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range options {
		sum = sum.Add(cfg.OptionPrice(o))
	}
	return sum
}

// Shipping is a fixed floor or a share of the subtotal, whichever is larger
func Shipping(cfg *catalog.PricingConfig, subtotal decimal.Decimal) decimal.Decimal {
	return decimal.Max(cfg.Shipping.Minimum, subtotal.Mul(cfg.Shipping.Rate).Round(0))
}

// Tax is a flat share of the subtotal
func Tax(cfg *catalog.PricingConfig, subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(cfg.Tax.Rate).Round(0)
}

// Duties are waived for domestic shipments
func Duties(cfg *catalog.PricingConfig, subtotal decimal.Decimal, country string) decimal.Decimal {
	if strings.EqualFold(strings.TrimSpace(country), cfg.HomeCountry) {
		return decimal.Zero
	}
	return subtotal.Mul(cfg.Duties.Rate).Round(0)
}

// Price computes the full breakdown in the request's display currency.
// Every displayed amount is converted from its base value independently,
// so total may differ from the sum of the rounded parts by one minor unit.
func (e *Engine) Price(cfg *catalog.PricingConfig, req *domain.ParsedQuoteRequest) (*domain.QuoteBreakdown, error) {
	code := req.Currency
	if code == "" {
		code = domain.BaseCurrency
	}

	breakdown := &domain.QuoteBreakdown{
		Currency: code,
		Lines:    make([]domain.LineBreakdown, 0, len(req.Items)),
	}

	subtotal := decimal.Zero
	for i, item := range req.Items {
		unit, err := UnitPrice(cfg, item)
		if err != nil {
			return nil, err
		}
		options := OptionsPerUnit(cfg, item.Options)
		qty := decimal.NewFromInt(int64(item.Qty))
		lineTotal := unit.Mul(qty).Add(options.Mul(qty))
		subtotal = subtotal.Add(lineTotal)

		line := domain.LineBreakdown{Index: i, Qty: item.Qty}
		if line.UnitPrice, err = e.converter.ToDisplay(unit, code); err != nil {
			return nil, err
		}
		if line.OptionsPerUnit, err = e.converter.ToDisplay(options, code); err != nil {
			return nil, err
		}
		if line.LineTotal, err = e.converter.ToDisplay(lineTotal, code); err != nil {
			return nil, err
		}
		breakdown.Lines = append(breakdown.Lines, line)
	}

	shipping := Shipping(cfg, subtotal)
	tax := Tax(cfg, subtotal)
	duties := Duties(cfg, subtotal, req.Country)
	total := subtotal.Add(shipping).Add(tax).Add(duties)

	e.logger.Debug("Priced quote",
		zap.String("country", req.Country),
		zap.String("subtotal_base", subtotal.String()),
		zap.String("total_base", total.String()),
	)

	amounts := []struct {
		base decimal.Decimal
		out  *decimal.Decimal
	}{
		{subtotal, &breakdown.Subtotal},
		{shipping, &breakdown.Shipping},
		{tax, &breakdown.Tax},
		{duties, &breakdown.Duties},
		{total, &breakdown.Total},
	}
	for _, a := range amounts {
		v, err := e.converter.ToDisplay(a.base, code)
		if err != nil {
			return nil, err
		}
		*a.out = v
	}

	return breakdown, nil
}

// TierPrice is a tier's unit price in one display currency
type TierPrice struct {
	Currency domain.Currency `json:"currency"`
	Unit     decimal.Decimal `json:"unit"`
}

// TierRow is one line of the public price table
type TierRow struct {
	Min    int         `json:"min"`
	Max    int         `json:"max"`
	Prices []TierPrice `json:"prices"`
}

// PriceTable lists every tier's unit price in every display currency
func (e *Engine) PriceTable(cfg *catalog.PricingConfig) ([]TierRow, error) {
	rows := make([]TierRow, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		row := TierRow{Min: t.Min, Max: t.Max}
		for _, code := range currency.Supported() {
			unit, err := e.converter.ToDisplay(t.Unit, code)
			if err != nil {
				return nil, err
			}
			row.Prices = append(row.Prices, TierPrice{Currency: code, Unit: unit})
		}
		rows = append(rows, row)
	}
	return rows, nil
}
