package currency

import (
	"github.com/shopspring/decimal"

	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/pkg/errors"
)

// DefaultRates are units of display currency per one unit of base currency
var DefaultRates = map[domain.Currency]decimal.Decimal{
	domain.CurrencyJPY: decimal.NewFromInt(1),
	domain.CurrencyUSD: decimal.RequireFromString("0.0064"),
	domain.CurrencyEUR: decimal.RequireFromString("0.0059"),
	domain.CurrencyGBP: decimal.RequireFromString("0.0049"),
	domain.CurrencyAUD: decimal.RequireFromString("0.0098"),
}

// display order for price tables and error messages
var supported = []domain.Currency{
	domain.CurrencyJPY,
	domain.CurrencyUSD,
	domain.CurrencyEUR,
	domain.CurrencyGBP,
	domain.CurrencyAUD,
}

// Converter converts between the base currency and display currencies
type Converter struct {
	rates map[domain.Currency]decimal.Decimal
}

// NewConverter creates a converter over the static rate table
func NewConverter() *Converter {
	rates := make(map[domain.Currency]decimal.Decimal, len(DefaultRates))
	for code, rate := range DefaultRates {
		rates[code] = rate
	}
	return &Converter{rates: rates}
}

// Supported returns the display currencies in display order
func Supported() []domain.Currency {
	out := make([]domain.Currency, len(supported))
	copy(out, supported)
	return out
}

// IsSupported checks a currency code against the rate table
func IsSupported(code domain.Currency) bool {
	_, ok := DefaultRates[code]
	return ok
}

// Decimals returns the number of minor digits shown for a currency
func Decimals(code domain.Currency) int32 {
	if code == domain.BaseCurrency {
		return 0
	}
	return 2
}

// Round applies the display rounding policy of a currency
func Round(amount decimal.Decimal, code domain.Currency) decimal.Decimal {
	return amount.Round(Decimals(code))
}

// ToDisplay converts a base-currency amount and rounds it for display
func (c *Converter) ToDisplay(amountBase decimal.Decimal, code domain.Currency) (decimal.Decimal, error) {
	rate, ok := c.rates[code]
	if !ok {
		return decimal.Zero, &errors.ErrUnsupportedCurrency{Code: string(code)}
	}
	return Round(amountBase.Mul(rate), code), nil
}

// ToBase converts a display amount back to the base currency, unrounded
func (c *Converter) ToBase(amount decimal.Decimal, code domain.Currency) (decimal.Decimal, error) {
	rate, ok := c.rates[code]
	if !ok {
		return decimal.Zero, &errors.ErrUnsupportedCurrency{Code: string(code)}
	}
	if code == domain.BaseCurrency {
		return amount, nil
	}
	return amount.Div(rate), nil
}
