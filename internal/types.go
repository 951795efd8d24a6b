package internal

import (
	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/services/cache"
)

// Dependencies holds the services shared by every source adapter
type Dependencies struct {
	Cache    cache.CacheService
	Fetcher  helpers.Fetcher
	Reporter helpers.LoggerInterface
}
