package catalog

import "context"

// StaticProvider serves fixed in-memory snapshots
type StaticProvider struct {
	Pricing  *PricingConfig
	Colors   *ColorConfig
	LeadTime *LeadTimeConfig
	Words    []string
}

func (p *StaticProvider) PricingConfig(ctx context.Context) (*PricingConfig, error) {
	return p.Pricing, ctx.Err()
}

func (p *StaticProvider) ColorConfig(ctx context.Context) (*ColorConfig, error) {
	return p.Colors, ctx.Err()
}

func (p *StaticProvider) LeadTimeConfig(ctx context.Context) (*LeadTimeConfig, error) {
	return p.LeadTime, ctx.Err()
}

func (p *StaticProvider) ForbiddenWords(ctx context.Context) ([]string, error) {
	return p.Words, ctx.Err()
}
