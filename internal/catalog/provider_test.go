package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/pkg/errors"
)

func dataDir() string {
	return filepath.Join("..", "..", "data")
}

func TestFileProvider_LoadsShippedData(t *testing.T) {
	p := NewFileProvider(dataDir(), NewCache(false), zaptest.NewLogger(t))
	ctx := context.Background()

	pricing, err := p.PricingConfig(ctx)
	if err != nil {
		t.Fatalf("PricingConfig error: %v", err)
	}
	if len(pricing.Tiers) == 0 {
		t.Fatalf("expected tiers")
	}
	if pricing.HomeCountry != "JP" {
		t.Fatalf("expected home country JP, got %q", pricing.HomeCountry)
	}
	if pricing.Shipping.Minimum.IntPart() != 2500 {
		t.Fatalf("expected shipping minimum 2500, got %s", pricing.Shipping.Minimum)
	}
	if c := pricing.SizeCoefficient(domain.Size12x202); c.String() != "1" {
		t.Fatalf("expected size coefficient 1, got %s", c)
	}
	if pricing.OptionPrice("gift_box").IsZero() {
		t.Fatalf("expected gift_box option price")
	}

	colors, err := p.ColorConfig(ctx)
	if err != nil {
		t.Fatalf("ColorConfig error: %v", err)
	}
	if len(colors.Body) == 0 || len(colors.Rules.Incompat) == 0 {
		t.Fatalf("expected palette and rules")
	}

	lead, err := p.LeadTimeConfig(ctx)
	if err != nil {
		t.Fatalf("LeadTimeConfig error: %v", err)
	}
	us, ok := lead.CountryZone["US"]
	if !ok {
		t.Fatalf("expected upper-cased US entry, got keys %v", lead.CountryZone)
	}
	if lead.BaseProductionDays+us.Days[0] != 6 || lead.BaseProductionDays+us.Days[1] != 9 {
		t.Fatalf("unexpected US window: base=%d days=%v", lead.BaseProductionDays, us.Days)
	}

	words, err := p.ForbiddenWords(ctx)
	if err != nil {
		t.Fatalf("ForbiddenWords error: %v", err)
	}
	for _, w := range words {
		if w != strings.ToLower(w) || strings.Contains(w, "#") || w == "" {
			t.Fatalf("word list not normalized: %q", w)
		}
	}
}

func TestFileProvider_CacheAndBypass(t *testing.T) {
	dir := t.TempDir()
	write := func(body string) {
		if err := os.WriteFile(filepath.Join(dir, "leadtime.yaml"), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write("base_production_days: 3\ncountry_zone:\n  US: { zone: 2, days: [3, 6] }\n")

	ctx := context.Background()
	cachedProvider := NewFileProvider(dir, NewCache(false), zaptest.NewLogger(t))
	devProvider := NewFileProvider(dir, NewCache(true), zaptest.NewLogger(t))

	if _, err := cachedProvider.LeadTimeConfig(ctx); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if _, err := devProvider.LeadTimeConfig(ctx); err != nil {
		t.Fatalf("first load: %v", err)
	}

	write("base_production_days: 10\ncountry_zone: {}\n")

	cfg, err := cachedProvider.LeadTimeConfig(ctx)
	if err != nil {
		t.Fatalf("cached load: %v", err)
	}
	if cfg.BaseProductionDays != 3 {
		t.Fatalf("cached provider must keep the first snapshot, got %d", cfg.BaseProductionDays)
	}

	cfg, err = devProvider.LeadTimeConfig(ctx)
	if err != nil {
		t.Fatalf("bypass load: %v", err)
	}
	if cfg.BaseProductionDays != 10 {
		t.Fatalf("bypass provider must re-read, got %d", cfg.BaseProductionDays)
	}
}

func TestFileProvider_MissingFileIsConfigLoadError(t *testing.T) {
	p := NewFileProvider(t.TempDir(), NewCache(false), zaptest.NewLogger(t))
	_, err := p.PricingConfig(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing pricing.yaml")
	}
	loadErr, ok := errors.AsConfigLoad(err)
	if !ok || loadErr.Resource != ResourcePricing {
		t.Fatalf("expected ErrConfigLoad for pricing, got %v", err)
	}

	if _, err := p.ForbiddenWords(context.Background()); err == nil {
		t.Fatalf("expected error for missing word list")
	}
}

func TestFileProvider_RejectsMalformedLeadTime(t *testing.T) {
	dir := t.TempDir()
	body := "base_production_days: 3\ncountry_zone:\n  US: { zone: 2, days: [6] }\n"
	if err := os.WriteFile(filepath.Join(dir, "leadtime.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p := NewFileProvider(dir, NewCache(false), zaptest.NewLogger(t))
	if _, err := p.LeadTimeConfig(context.Background()); err == nil {
		t.Fatalf("expected validation error for single-value window")
	}
}

func TestFileProvider_HonoursCancelledContext(t *testing.T) {
	p := NewFileProvider(dataDir(), NewCache(false), zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.PricingConfig(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestParseWordList(t *testing.T) {
	in := "# header\n\nScam\n  Hate  \nterror # trailing comment\n#only comment\n"
	words, err := ParseWordList(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseWordList error: %v", err)
	}
	expected := []string{"scam", "hate", "terror"}
	if len(words) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, words)
	}
	for i := range expected {
		if words[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, words)
		}
	}
}

func TestColorConfig_ResolveAndIncompat(t *testing.T) {
	cfg := &ColorConfig{
		Body:  []ColorEntry{{ID: "black", Hex: "#000001"}},
		Rules: ColorRules{Incompat: []IncompatRule{{Body: "black", Text: "black"}}},
	}

	if got := cfg.ResolveHex(RoleBody, domain.PresetColor(domain.ColorBlack)); got != "#000001" {
		t.Fatalf("catalog hex should win, got %s", got)
	}
	if got := cfg.ResolveHex(RoleText, domain.PresetColor(domain.ColorBlack)); got != "#111827" {
		t.Fatalf("missing text entry should fall back to built-in palette, got %s", got)
	}
	if got := cfg.ResolveHex(RoleText, domain.CustomColor("a1b2c3")); got != "#A1B2C3" {
		t.Fatalf("custom hex should be normalized, got %s", got)
	}

	if !cfg.Incompatible(domain.PresetColor(domain.ColorBlack), domain.PresetColor(domain.ColorBlack)) {
		t.Fatalf("black on black must be incompatible")
	}
	if cfg.Incompatible(domain.PresetColor(domain.ColorBlack), domain.CustomColor("#111827")) {
		t.Fatalf("rules only apply to presets")
	}
}
