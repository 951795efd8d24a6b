package crawler

import (
	"context"
	"strings"
	"time"

	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/internal"
	"sjsage522/pricecompare/internal/price"
	"sjsage522/pricecompare/logger"

	"github.com/PuerkitoBio/goquery"
)

// defaultTimeout bounds a request when no fetcher is injected
const defaultTimeout = 10 * time.Second

// ConfigurableCrawler is a crawler that can be configured with selectors
type ConfigurableCrawler struct {
	BaseCrawler
	Selectors  Selectors
	Normalizer price.Normalizer
}

// NewConfigurableCrawler creates a new configurable crawler
func NewConfigurableCrawler(config CrawlerConfig, deps internal.Dependencies) *ConfigurableCrawler {
	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = helpers.NewHTTPFetcher(defaultTimeout)
	}
	reporter := deps.Reporter
	if reporter == nil {
		reporter = helpers.NewLogger("")
	}

	return &ConfigurableCrawler{
		BaseCrawler: BaseCrawler{
			SearchURL:    config.SearchURL,
			Encoding:     config.Encoding,
			BaseURL:      config.BaseURL,
			ResolveLinks: config.ResolveLinks,
			Provider:     config.Provider,
			CacheKey:     config.CacheKey,
			CacheSvc:     deps.Cache,
			BlockTime:    config.BlockTime,
			Headers:      config.Headers,
			Fetcher:      fetcher,
			Reporter:     reporter,
		},
		Selectors: config.Selectors,
		Normalizer: price.Normalizer{
			Noise:         config.PriceNoise,
			AllowFraction: config.AllowFractionalPrices,
		},
	}
}

// FetchListings searches the storefront and reports any fault instead of
// returning it, so one source's outage never affects another
func (c *ConfigurableCrawler) FetchListings(ctx context.Context, query string) []Listing {
	listings, err := c.Search(ctx, query)
	if err != nil {
		c.Reporter.LogError(c.Provider, err)
		return nil
	}
	return listings
}

// Search fetches and parses the first result page for query
func (c *ConfigurableCrawler) Search(ctx context.Context, query string) ([]Listing, error) {
	body, err := c.fetchWithCache(ctx, c.searchURL(query))
	if err != nil {
		return nil, err
	}

	doc, err := c.createDocument(body)
	if err != nil {
		return nil, err
	}

	containers := doc.Find(c.Selectors.ListingList)
	listings := c.processListings(containers, c.processListing)

	logger.ForCrawler(c.GetName()).Debug().
		Str("query", query).
		Int("containers", containers.Length()).
		Int("listings", len(listings)).
		Msg("Search page parsed")

	return listings, nil
}

// firstText returns the trimmed text of the first match of selector within s
func firstText(s *goquery.Selection, selector string) (string, bool) {
	sel := s.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	text := strings.TrimSpace(sel.Text())
	return text, text != ""
}

// extractLink reads the detail href from the link element or the container
func (c *ConfigurableCrawler) extractLink(s *goquery.Selection) (string, bool) {
	linkSel := s
	if c.Selectors.Link != "" {
		linkSel = s.Find(c.Selectors.Link).First()
	}

	link, exists := linkSel.Attr("href")
	link = strings.TrimSpace(link)
	if !exists || link == "" {
		return "", false
	}
	return c.resolveLink(link), true
}

// processListing maps one container to a listing, or nil when any part is missing
func (c *ConfigurableCrawler) processListing(s *goquery.Selection) *Listing {
	name, ok := firstText(s, c.Selectors.Name)
	if !ok {
		return nil
	}

	rawPrice, ok := firstText(s, c.Selectors.Price)
	if !ok {
		return nil
	}

	link, ok := c.extractLink(s)
	if !ok {
		return nil
	}

	value, ok := c.Normalizer.Normalize(rawPrice)
	if !ok {
		return nil
	}

	return &Listing{
		Name:   name,
		Price:  value,
		Source: c.Provider,
		Link:   link,
	}
}
