package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Color is either a palette entry or a custom hex value
type Color struct {
	Preset ColorID
	Hex    string
}

// PresetColor builds a palette color
func PresetColor(id ColorID) Color {
	return Color{Preset: id}
}

// CustomColor builds a custom color from a normalized #RRGGBB value
func CustomColor(hex string) Color {
	return Color{Preset: ColorCustom, Hex: hex}
}

// IsCustom reports whether the color carries its own hex value
func (c Color) IsCustom() bool {
	return c.Preset == ColorCustom
}

// NormalizeHex turns "abcdef" / "#abcdef" into "#ABCDEF"
func NormalizeHex(v string) string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "#")
	return "#" + strings.ToUpper(v)
}

// ParsedItem is a validated, normalized quote item
type ParsedItem struct {
	ProductType ProductType
	Message     string
	BodyColor   Color
	TextColor   Color
	BodyHex     string
	TextHex     string
	Finish      FinishID
	Size        SizeID
	Qty         int
	Options     []string
}

// ParsedQuoteRequest is the typed form of an inbound quote request
type ParsedQuoteRequest struct {
	Items       []ParsedItem
	Country     string
	Currency    Currency
	NeedsReview bool
	Errors      []string
}

// LineBreakdown is one item's price in the display currency
type LineBreakdown struct {
	Index          int
	Qty            int
	UnitPrice      decimal.Decimal
	OptionsPerUnit decimal.Decimal
	LineTotal      decimal.Decimal
}

// QuoteBreakdown holds display-currency amounts
type QuoteBreakdown struct {
	Currency Currency
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Duties   decimal.Decimal
	Total    decimal.Decimal
	Lines    []LineBreakdown
}

// ETAWindow is an estimated delivery window in days
type ETAWindow struct {
	Min    int
	Max    int
	Zone   int
	Mapped bool
}

// QuoteResult is the outcome of a successful quote
type QuoteResult struct {
	ID uuid.UUID
	QuoteBreakdown
	ETA         ETAWindow
	NeedsReview bool
	Errors      []string
}

// QuoteLog is the stored summary of an issued quote
type QuoteLog struct {
	ID          uuid.UUID
	RequestHash string
	Country     string
	Currency    Currency
	ItemCount   int
	TotalQty    int
	Total       decimal.Decimal
	NeedsReview bool
	ETAMin      int
	ETAMax      int
	CreatedAt   time.Time
}
