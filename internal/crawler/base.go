package crawler

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/pricecompare/helpers"
	pkgerrors "sjsage522/pricecompare/pkg/errors"
	"sjsage522/pricecompare/services/cache"
)

// BaseCrawler provides common functionality for all crawlers
type BaseCrawler struct {
	SearchURL    string
	Encoding     QueryEncoding
	BaseURL      string
	ResolveLinks bool
	Provider     string
	CacheKey     string
	CacheSvc     cache.CacheService
	BlockTime    time.Duration
	Headers      helpers.Headers
	Fetcher      helpers.Fetcher
	Reporter     helpers.LoggerInterface
}

// searchURL appends the escaped query to the source's search endpoint
func (c *BaseCrawler) searchURL(query string) string {
	return c.SearchURL + helpers.EscapeQuery(query, string(c.Encoding))
}

// fetchWithCache fetches a URL unless the source is inside a rate-limit
// block window, and opens one when the source answers with a rate limit
func (c *BaseCrawler) fetchWithCache(ctx context.Context, url string) (io.Reader, error) {
	if c.CacheSvc != nil && c.CacheKey != "" {
		if _, err := c.CacheSvc.Get(c.CacheKey); err == nil {
			return nil, pkgerrors.NewBlocked(c.Provider, c.BlockTime)
		}
	}

	body, err := c.Fetcher.Fetch(ctx, url, c.Headers)
	if err != nil {
		if c.CacheSvc != nil && c.CacheKey != "" && pkgerrors.IsType(err, pkgerrors.ErrorTypeRateLimit) {
			seconds := []byte(fmt.Sprintf("%d", c.BlockTime/time.Second))
			if setErr := c.CacheSvc.Set(c.CacheKey, seconds, c.BlockTime); setErr != nil {
				c.Reporter.LogError(c.Provider, pkgerrors.NewCache(c.Provider, "failed to store block key", setErr))
			}
		}
		return nil, err
	}

	return body, nil
}

// createDocument creates a goquery document from a reader
func (c *BaseCrawler) createDocument(reader io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, pkgerrors.NewParsing(c.Provider, "failed to parse HTML", err)
	}
	return doc, nil
}

// processListings processes containers in parallel using goroutines.
// Every goroutine writes its own slot, so the result keeps page order.
func (c *BaseCrawler) processListings(selections *goquery.Selection, processor ProcessorFunc) []Listing {
	slots := make([]*Listing, selections.Length())
	var wg sync.WaitGroup

	selections.Each(func(i int, s *goquery.Selection) {
		wg.Add(1)
		go func(i int, s *goquery.Selection) {
			defer wg.Done()
			slots[i] = processor(s)
		}(i, s)
	})

	wg.Wait()

	listings := make([]Listing, 0, len(slots))
	for _, listing := range slots {
		if listing != nil {
			listings = append(listings, *listing)
		}
	}

	return listings
}

// resolveLink applies the source's relative-link policy
func (c *BaseCrawler) resolveLink(link string) string {
	if !c.ResolveLinks {
		return link
	}
	return helpers.ResolveURL(c.BaseURL, link)
}

// GetName returns the crawler's name for logging
func (c *BaseCrawler) GetName() string {
	return c.Provider + "Crawler"
}

// GetProvider returns the storefront identifier
func (c *BaseCrawler) GetProvider() string {
	return c.Provider
}
