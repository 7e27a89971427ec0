package currency

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/pkg/errors"
)

func TestToDisplay_RoundsPerCurrency(t *testing.T) {
	c := NewConverter()
	cases := []struct {
		amount   string
		currency domain.Currency
		expected string
	}{
		{"4800", domain.CurrencyJPY, "4800"},
		{"4800.5", domain.CurrencyJPY, "4801"},
		{"4799.4", domain.CurrencyJPY, "4799"},
		{"4800", domain.CurrencyUSD, "30.72"},
		{"1234", domain.CurrencyUSD, "7.9"},
		{"1234", domain.CurrencyEUR, "7.28"},
		{"2500", domain.CurrencyGBP, "12.25"},
		{"333", domain.CurrencyAUD, "3.26"},
		{"0", domain.CurrencyUSD, "0"},
	}
	for _, tc := range cases {
		got, err := c.ToDisplay(decimal.RequireFromString(tc.amount), tc.currency)
		if err != nil {
			t.Fatalf("ToDisplay(%s, %s) error: %v", tc.amount, tc.currency, err)
		}
		if got.String() != tc.expected {
			t.Fatalf("ToDisplay(%s, %s) expected %s, got %s", tc.amount, tc.currency, tc.expected, got.String())
		}
	}
}

func TestToBase_InvertsRate(t *testing.T) {
	c := NewConverter()
	got, err := c.ToBase(decimal.RequireFromString("30.72"), domain.CurrencyUSD)
	if err != nil {
		t.Fatalf("ToBase error: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(4800)) {
		t.Fatalf("expected 4800, got %s", got)
	}

	same, err := c.ToBase(decimal.RequireFromString("123.45"), domain.CurrencyJPY)
	if err != nil {
		t.Fatalf("ToBase error: %v", err)
	}
	if same.String() != "123.45" {
		t.Fatalf("base currency must pass through unrounded, got %s", same)
	}
}

func TestUnsupportedCurrency(t *testing.T) {
	c := NewConverter()
	if _, err := c.ToDisplay(decimal.NewFromInt(1), "CHF"); err == nil {
		t.Fatalf("expected error for CHF")
	} else if _, ok := err.(*errors.ErrUnsupportedCurrency); !ok {
		t.Fatalf("expected ErrUnsupportedCurrency, got %T", err)
	}
	if _, err := c.ToBase(decimal.NewFromInt(1), "XXX"); err == nil {
		t.Fatalf("expected error for XXX")
	}
	if IsSupported("CHF") {
		t.Fatalf("CHF must not be supported")
	}
}

func TestSupported_StartsWithBase(t *testing.T) {
	list := Supported()
	if len(list) != 5 || list[0] != domain.BaseCurrency {
		t.Fatalf("unexpected supported list: %v", list)
	}
	list[0] = "XXX"
	if Supported()[0] != domain.BaseCurrency {
		t.Fatalf("Supported must return a copy")
	}
}
