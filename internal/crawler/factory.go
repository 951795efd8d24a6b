package crawler

import (
	"sjsage522/pricecompare/config"
	"sjsage522/pricecompare/internal"
	"sjsage522/pricecompare/logger"
)

// Storefront identifiers stamped on every listing
const (
	ProviderJumia = "Jumia"
	ProviderSlot  = "Slot"
)

// CreateCrawlers creates all the crawlers based on the configuration.
// The order is the merge precedence used to break price ties.
func CreateCrawlers(cfg *config.Config, deps internal.Dependencies) []Crawler {
	crawlers := []Crawler{
		NewJumiaCrawler(cfg, deps),
		NewSlotCrawler(cfg, deps),
	}

	for i, c := range crawlers {
		logger.Debug("Crawler %d: %s", i, c.GetName())
	}

	return crawlers
}
