package domain

// ProductType identifies the orderable product
type ProductType string

const (
	ProductTypeBonfilet ProductType = "bonfilet"
)

// IsValid checks if the product type is supported
func (p ProductType) IsValid() bool {
	return p == ProductTypeBonfilet
}

// ColorID is a palette entry or the literal "custom"
type ColorID string

const (
	ColorBlack  ColorID = "black"
	ColorWhite  ColorID = "white"
	ColorRed    ColorID = "red"
	ColorBlue   ColorID = "blue"
	ColorYellow ColorID = "yellow"
	ColorGreen  ColorID = "green"
	ColorPink   ColorID = "pink"
	ColorPurple ColorID = "purple"
	ColorNavy   ColorID = "navy"
	ColorCustom ColorID = "custom"
)

// ColorIDs lists every accepted color id in display order
var ColorIDs = []ColorID{
	ColorBlack,
	ColorWhite,
	ColorRed,
	ColorBlue,
	ColorYellow,
	ColorGreen,
	ColorPink,
	ColorPurple,
	ColorNavy,
	ColorCustom,
}

// presetHex is the built-in palette, used when the color catalog has no entry for an id
var presetHex = map[ColorID]string{
	ColorBlack:  "#111827",
	ColorWhite:  "#FFFFFF",
	ColorRed:    "#DC2626",
	ColorBlue:   "#2563EB",
	ColorYellow: "#FACC15",
	ColorGreen:  "#16A34A",
	ColorPink:   "#EC4899",
	ColorPurple: "#8B5CF6",
	ColorNavy:   "#1E3A8A",
}

// IsValid checks if the color id is accepted
func (c ColorID) IsValid() bool {
	switch c {
	case ColorBlack,
		ColorWhite,
		ColorRed,
		ColorBlue,
		ColorYellow,
		ColorGreen,
		ColorPink,
		ColorPurple,
		ColorNavy,
		ColorCustom:
		return true
	default:
		return false
	}
}

// PresetHex returns the built-in hex for a palette id
func (c ColorID) PresetHex() (string, bool) {
	hex, ok := presetHex[c]
	return hex, ok
}

// FinishID identifies a band finish
type FinishID string

const (
	FinishNormal FinishID = "normal"
)

// IsValid checks if the finish is supported
func (f FinishID) IsValid() bool {
	return f == FinishNormal
}

// SizeID identifies a band size
type SizeID string

const (
	Size12x202 SizeID = "12mm/202mm"
)

// IsValid checks if the size is supported
func (s SizeID) IsValid() bool {
	return s == Size12x202
}

// Currency is an ISO 4217 code
type Currency string

const (
	CurrencyJPY Currency = "JPY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyAUD Currency = "AUD"
)

// BaseCurrency is the currency all internal computation happens in
const BaseCurrency = CurrencyJPY
