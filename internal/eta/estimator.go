package eta

import (
	"strings"

	"github.com/bonfilet/quoteapi/internal/catalog"
	"github.com/bonfilet/quoteapi/internal/domain"
)

// Window used for destinations missing from the zone table
const (
	DefaultMinTransitDays = 5
	DefaultMaxTransitDays = 10
)

// Estimate returns the delivery window for a destination country
func Estimate(cfg *catalog.LeadTimeConfig, country string) domain.ETAWindow {
	base := cfg.BaseProductionDays
	entry, ok := cfg.CountryZone[strings.ToUpper(strings.TrimSpace(country))]
	if !ok || len(entry.Days) != 2 {
		return domain.ETAWindow{
			Min:  base + DefaultMinTransitDays,
			Max:  base + DefaultMaxTransitDays,
			Zone: -1,
		}
	}
	return domain.ETAWindow{
		Min:    base + entry.Days[0],
		Max:    base + entry.Days[1],
		Zone:   entry.Zone,
		Mapped: true,
	}
}
