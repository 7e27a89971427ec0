package catalog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/pkg/errors"
)

const (
	ResourcePricing  = "pricing"
	ResourceColors   = "colors"
	ResourceLeadTime = "leadtime"
	ResourceWords    = "forbidden_words"
)

// Provider supplies read-only configuration snapshots
type Provider interface {
	PricingConfig(ctx context.Context) (*PricingConfig, error)
	ColorConfig(ctx context.Context) (*ColorConfig, error)
	LeadTimeConfig(ctx context.Context) (*LeadTimeConfig, error)
	ForbiddenWords(ctx context.Context) ([]string, error)
}

var hex6 = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// FileProvider loads configuration from YAML and text files in a data directory
type FileProvider struct {
	dir    string
	cache  *Cache
	logger *zap.Logger
}

// NewFileProvider creates a provider rooted at dir
func NewFileProvider(dir string, cache *Cache, logger *zap.Logger) *FileProvider {
	return &FileProvider{
		dir:    dir,
		cache:  cache,
		logger: logger,
	}
}

// Bypass reports whether every read goes back to the data files
func (p *FileProvider) Bypass() bool {
	return p.cache == nil || p.cache.Bypass()
}

func (p *FileProvider) PricingConfig(ctx context.Context) (*PricingConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cached(p.cache, ResourcePricing, p.loadPricing)
}

func (p *FileProvider) ColorConfig(ctx context.Context) (*ColorConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cached(p.cache, ResourceColors, p.loadColors)
}

func (p *FileProvider) LeadTimeConfig(ctx context.Context) (*LeadTimeConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cached(p.cache, ResourceLeadTime, p.loadLeadTime)
}

func (p *FileProvider) ForbiddenWords(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cached(p.cache, ResourceWords, p.loadWords)
}

func (p *FileProvider) loadPricing() (*PricingConfig, error) {
	v, err := p.readYAML("pricing.yaml")
	if err != nil {
		return nil, &errors.ErrConfigLoad{Resource: ResourcePricing, Err: err}
	}

	v.SetDefault("home_country", "JP")
	v.SetDefault("shipping.minimum", 2500)
	v.SetDefault("shipping.rate", "0.12")
	v.SetDefault("tax.rate", "0.10")
	v.SetDefault("duties.rate", "0.04")

	var cfg PricingConfig
	if err := unmarshal(v, &cfg); err != nil {
		return nil, &errors.ErrConfigLoad{Resource: ResourcePricing, Err: err}
	}
	cfg.HomeCountry = strings.ToUpper(cfg.HomeCountry)
	if err := ValidatePricing(&cfg); err != nil {
		return nil, &errors.ErrConfigLoad{Resource: ResourcePricing, Err: err}
	}

	p.logger.Debug("Loaded pricing config", zap.Int("tiers", len(cfg.Tiers)), zap.Int("options", len(cfg.Options)))
	return &cfg, nil
}

func (p *FileProvider) loadColors() (*ColorConfig, error) {
	v, err := p.readYAML("colors.yaml")
	if err != nil {
		return nil, &errors.ErrConfigLoad{Resource: ResourceColors, Err: err}
	}

	var cfg ColorConfig
	if err := unmarshal(v, &cfg); err != nil {
		return nil, &errors.ErrConfigLoad{Resource: ResourceColors, Err: err}
	}
	if err := ValidateColors(&cfg); err != nil {
		return nil, &errors.ErrConfigLoad{Resource: ResourceColors, Err: err}
	}

	p.logger.Debug("Loaded color config", zap.Int("body", len(cfg.Body)), zap.Int("text", len(cfg.Text)))
	return &cfg, nil
}

func (p *FileProvider) loadLeadTime() (*LeadTimeConfig, error) {
	v, err := p.readYAML("leadtime.yaml")
	if err != nil {
		return nil, &errors.ErrConfigLoad{Resource: ResourceLeadTime, Err: err}
	}

	var raw LeadTimeConfig
	if err := unmarshal(v, &raw); err != nil {
		return nil, &errors.ErrConfigLoad{Resource: ResourceLeadTime, Err: err}
	}

	// viper lower-cases map keys
	cfg := raw
	cfg.CountryZone = make(map[string]LeadTimeEntry, len(raw.CountryZone))
	for code, entry := range raw.CountryZone {
		cfg.CountryZone[strings.ToUpper(code)] = entry
	}
	if err := ValidateLeadTime(&cfg); err != nil {
		return nil, &errors.ErrConfigLoad{Resource: ResourceLeadTime, Err: err}
	}

	p.logger.Debug("Loaded lead time config", zap.Int("countries", len(cfg.CountryZone)))
	return &cfg, nil
}

func (p *FileProvider) loadWords() ([]string, error) {
	f, err := os.Open(filepath.Join(p.dir, "forbidden_words.txt"))
	if err != nil {
		return nil, &errors.ErrConfigLoad{Resource: ResourceWords, Err: err}
	}
	defer f.Close()

	words, err := ParseWordList(f)
	if err != nil {
		return nil, &errors.ErrConfigLoad{Resource: ResourceWords, Err: err}
	}
	p.logger.Debug("Loaded forbidden words", zap.Int("count", len(words)))
	return words, nil
}

func (p *FileProvider) readYAML(name string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(p.dir, name))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}

func unmarshal(v *viper.Viper, out interface{}) error {
	return v.Unmarshal(out, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		decimalHook,
		mapstructure.StringToTimeDurationHookFunc(),
	)))
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decimalHook lets YAML numbers and strings decode into decimal.Decimal
func decimalHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint64:
		return decimal.NewFromInt(int64(v)), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid decimal %q: %w", v, err)
		}
		return d, nil
	}
	return data, nil
}

// ParseWordList reads one word per line, skipping blanks and # comments
func ParseWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ValidatePricing rejects configs the engine cannot price with
func ValidatePricing(cfg *PricingConfig) error {
	if len(cfg.Tiers) == 0 {
		return fmt.Errorf("at least one tier is required")
	}
	for i, t := range cfg.Tiers {
		if t.Min < 1 || t.Max < t.Min {
			return fmt.Errorf("tier %d has invalid range [%d,%d]", i, t.Min, t.Max)
		}
		if t.Unit.IsNegative() {
			return fmt.Errorf("tier %d has negative unit price", i)
		}
	}
	for id, c := range cfg.Coeff.Finish {
		if !c.IsPositive() {
			return fmt.Errorf("finish coefficient %q must be positive", id)
		}
	}
	for id, c := range cfg.Coeff.Size {
		if !c.IsPositive() {
			return fmt.Errorf("size coefficient %q must be positive", id)
		}
	}
	for id, price := range cfg.Options {
		if price.IsNegative() {
			return fmt.Errorf("option %q has negative price", id)
		}
	}
	if cfg.Shipping.Minimum.IsNegative() || cfg.Shipping.Rate.IsNegative() ||
		cfg.Tax.Rate.IsNegative() || cfg.Duties.Rate.IsNegative() {
		return fmt.Errorf("shipping, tax and duty rates must not be negative")
	}
	if len(cfg.HomeCountry) < 2 {
		return fmt.Errorf("home_country is required")
	}
	return nil
}

// ValidateColors checks every palette hex value
func ValidateColors(cfg *ColorConfig) error {
	for _, palette := range [][]ColorEntry{cfg.Body, cfg.Text} {
		for _, e := range palette {
			if e.ID == "" {
				return fmt.Errorf("color entry without id")
			}
			if !hex6.MatchString(e.Hex) {
				return fmt.Errorf("color %q has invalid hex %q", e.ID, e.Hex)
			}
		}
	}
	return nil
}

// ValidateLeadTime checks the zone table windows
func ValidateLeadTime(cfg *LeadTimeConfig) error {
	if cfg.BaseProductionDays < 0 {
		return fmt.Errorf("base_production_days must not be negative")
	}
	for code, e := range cfg.CountryZone {
		if len(e.Days) != 2 {
			return fmt.Errorf("country %s: days must be [min, max]", code)
		}
		if e.Days[0] < 0 || e.Days[1] < e.Days[0] {
			return fmt.Errorf("country %s: invalid days window %v", code, e.Days)
		}
	}
	return nil
}
