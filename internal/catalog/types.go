package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bonfilet/quoteapi/internal/domain"
)

// PricingTier is an inclusive quantity range with its base-currency unit price
type PricingTier struct {
	Min  int             `mapstructure:"min" json:"min"`
	Max  int             `mapstructure:"max" json:"max"`
	Unit decimal.Decimal `mapstructure:"unit" json:"unit"`
}

// Coefficients multiply the tier unit price
type Coefficients struct {
	Finish map[string]decimal.Decimal `mapstructure:"finish" json:"finish"`
	Size   map[string]decimal.Decimal `mapstructure:"size" json:"size"`
}

// ShippingConfig is a floor plus a percentage of subtotal
type ShippingConfig struct {
	Minimum decimal.Decimal `mapstructure:"minimum" json:"minimum"`
	Rate    decimal.Decimal `mapstructure:"rate" json:"rate"`
}

// RateConfig holds a single percentage
type RateConfig struct {
	Rate decimal.Decimal `mapstructure:"rate" json:"rate"`
}

// PricingConfig is the contents of pricing.yaml
type PricingConfig struct {
	HomeCountry string                     `mapstructure:"home_country" json:"homeCountry"`
	Tiers       []PricingTier              `mapstructure:"tiers" json:"tiers"`
	Coeff       Coefficients               `mapstructure:"coeff" json:"coeff"`
	Options     map[string]decimal.Decimal `mapstructure:"options" json:"options"`
	Shipping    ShippingConfig             `mapstructure:"shipping" json:"shipping"`
	Tax         RateConfig                 `mapstructure:"tax" json:"tax"`
	Duties      RateConfig                 `mapstructure:"duties" json:"duties"`
}

// FinishCoefficient returns the coefficient for a finish, 1 when unknown
func (c *PricingConfig) FinishCoefficient(id domain.FinishID) decimal.Decimal {
	return coefficient(c.Coeff.Finish, string(id))
}

// SizeCoefficient returns the coefficient for a size, 1 when unknown
func (c *PricingConfig) SizeCoefficient(id domain.SizeID) decimal.Decimal {
	return coefficient(c.Coeff.Size, string(id))
}

// OptionPrice returns the per-unit price of an option, 0 when unknown
func (c *PricingConfig) OptionPrice(id string) decimal.Decimal {
	if p, ok := c.Options[strings.ToLower(id)]; ok {
		return p
	}
	return decimal.Zero
}

func coefficient(m map[string]decimal.Decimal, key string) decimal.Decimal {
	if v, ok := m[strings.ToLower(key)]; ok {
		return v
	}
	return decimal.NewFromInt(1)
}

// ColorEntry is one palette color
type ColorEntry struct {
	ID     string `mapstructure:"id" json:"id"`
	Label  string `mapstructure:"label" json:"label"`
	Hex    string `mapstructure:"hex" json:"hex"`
	Effect string `mapstructure:"effect" json:"effect,omitempty"`
}

// IncompatRule is a body/text pair that cannot be ordered
type IncompatRule struct {
	Body string `mapstructure:"body" json:"body"`
	Text string `mapstructure:"text" json:"text"`
}

// ColorRules holds the palette constraints
type ColorRules struct {
	Incompat []IncompatRule `mapstructure:"incompat" json:"incompat"`
}

// ColorConfig is the contents of colors.yaml
type ColorConfig struct {
	Body  []ColorEntry `mapstructure:"body" json:"body"`
	Text  []ColorEntry `mapstructure:"text" json:"text"`
	Rules ColorRules   `mapstructure:"rules" json:"rules"`
}

// ColorRole selects the body or text palette
type ColorRole int

const (
	RoleBody ColorRole = iota
	RoleText
)

// ResolveHex turns a color into a concrete #RRGGBB value.
// Catalog entries win over the built-in palette.
func (c *ColorConfig) ResolveHex(role ColorRole, color domain.Color) string {
	if color.IsCustom() {
		return domain.NormalizeHex(color.Hex)
	}
	palette := c.Body
	if role == RoleText {
		palette = c.Text
	}
	for _, e := range palette {
		if e.ID == string(color.Preset) && e.Hex != "" {
			return domain.NormalizeHex(e.Hex)
		}
	}
	if hex, ok := color.Preset.PresetHex(); ok {
		return hex
	}
	return "#000000"
}

// Incompatible reports whether a body/text preset pair is forbidden
func (c *ColorConfig) Incompatible(body, text domain.Color) bool {
	if body.IsCustom() || text.IsCustom() {
		return false
	}
	for _, r := range c.Rules.Incompat {
		if r.Body == string(body.Preset) && r.Text == string(text.Preset) {
			return true
		}
	}
	return false
}

// LeadTimeEntry maps a country to a shipping zone and transit window
type LeadTimeEntry struct {
	Zone int   `mapstructure:"zone" json:"zone"`
	Days []int `mapstructure:"days" json:"days"`
}

// LeadTimeConfig is the contents of leadtime.yaml
type LeadTimeConfig struct {
	BaseProductionDays int                      `mapstructure:"base_production_days" json:"baseProductionDays"`
	CountryZone        map[string]LeadTimeEntry `mapstructure:"country_zone" json:"countryZone"`
	ETAFormula         string                   `mapstructure:"eta_formula" json:"etaFormula,omitempty"`
}
