package crawler

import (
	"sjsage522/pricecompare/config"
	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/internal"
)

// NewSlotCrawler creates a Slot crawler. Slot links are already absolute.
func NewSlotCrawler(cfg *config.Config, deps internal.Dependencies) *ConfigurableCrawler {
	return NewConfigurableCrawler(CrawlerConfig{
		SearchURL: cfg.SlotURL,
		Encoding:  SpacePlus,
		Provider:  ProviderSlot,
		CacheKey:  "slot_rate_limited",
		BlockTime: cfg.BlockTime,
		Headers:   helpers.DefaultHeaders(cfg.UserAgent),
		Selectors: Selectors{
			ListingList: "li.product-item",
			Name:        "a.product-item-link",
			Price:       "span.price",
			Link:        "a.product-item-link",
		},
		PriceNoise:            "₦NGN,",
		AllowFractionalPrices: cfg.AllowFractionalPrices,
	}, deps)
}
