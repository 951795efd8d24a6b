package crawler

import (
	"sjsage522/pricecompare/config"
	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/internal"
)

// NewJumiaCrawler creates a Jumia crawler.
// Jumia emits relative detail links, resolved against the site root of the
// search URL.
func NewJumiaCrawler(cfg *config.Config, deps internal.Dependencies) *ConfigurableCrawler {
	return NewConfigurableCrawler(CrawlerConfig{
		SearchURL:    cfg.JumiaURL,
		Encoding:     SpacePercent20,
		BaseURL:      helpers.SiteRoot(cfg.JumiaURL),
		ResolveLinks: true,
		Provider:     ProviderJumia,
		CacheKey:     "jumia_rate_limited",
		BlockTime:    cfg.BlockTime,
		Headers:      helpers.DefaultHeaders(cfg.UserAgent),
		Selectors: Selectors{
			ListingList: "a.core",
			Name:        "h3.name",
			Price:       "div.prc",
		},
		PriceNoise:            "₦,",
		AllowFractionalPrices: cfg.AllowFractionalPrices,
	}, deps)
}
