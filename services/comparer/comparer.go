package comparer

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/internal/crawler"
	"sjsage522/pricecompare/internal/filter"
	"sjsage522/pricecompare/logger"
	"sjsage522/pricecompare/services/exporter"
)

// Sink receives every successful comparison, e.g. a console renderer or
// a stream publisher
type Sink interface {
	Consume(query string, listings []crawler.Listing) error
}

// Comparer runs every source adapter for a query and ranks the merged result
type Comparer struct {
	crawlers   []crawler.Crawler
	policy     filter.Policy
	reporter   helpers.LoggerInterface
	concurrent bool
	sinks      []Sink
}

// Option configures a Comparer
type Option func(*Comparer)

// WithPolicy sets the relevance policy, Tiered by default
func WithPolicy(policy filter.Policy) Option {
	return func(c *Comparer) { c.policy = policy }
}

// WithConcurrency runs the adapters in parallel when enabled
func WithConcurrency(enabled bool) Option {
	return func(c *Comparer) { c.concurrent = enabled }
}

// WithReporter sets the diagnostic channel for recovered adapter faults
func WithReporter(reporter helpers.LoggerInterface) Option {
	return func(c *Comparer) { c.reporter = reporter }
}

// WithSinks registers consumers of successful comparisons
func WithSinks(sinks ...Sink) Option {
	return func(c *Comparer) { c.sinks = append(c.sinks, sinks...) }
}

// NewComparer creates a comparer over crawlers, whose order is the merge
// precedence for equal prices
func NewComparer(crawlers []crawler.Crawler, opts ...Option) *Comparer {
	c := &Comparer{
		crawlers:   crawlers,
		policy:     filter.Tiered{},
		reporter:   helpers.NewLogger(""),
		concurrent: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare returns the relevant listings for query, cheapest first.
// The boolean is false when no listing survived, which is not a fault.
func (c *Comparer) Compare(ctx context.Context, query string) ([]crawler.Listing, bool) {
	log := logger.ForComparer()
	start := time.Now()

	all := c.collect(ctx, query)
	relevant := c.policy.Filter(all, query)

	log.Info().
		Str("query", query).
		Int("fetched", len(all)).
		Int("relevant", len(relevant)).
		Dur("elapsed", time.Since(start)).
		Msg("Comparison finished")

	if len(relevant) == 0 {
		return nil, false
	}

	SortByPrice(relevant)

	for _, sink := range c.sinks {
		if err := sink.Consume(query, relevant); err != nil {
			log.Warn().Err(err).Msg("Sink failed")
		}
	}

	return relevant, true
}

// CompareAndExport compares and exports the result with ExportAll.
// Nothing is written when there are no results.
func (c *Comparer) CompareAndExport(ctx context.Context, query string, exp exporter.Exporter, dir string, n int) ([]crawler.Listing, bool, error) {
	listings, found := c.Compare(ctx, query)
	if !found {
		return nil, false, nil
	}
	if err := ExportAll(exp, dir, query, listings, n); err != nil {
		return listings, true, err
	}
	return listings, true, nil
}

// ExportAll writes the full result set to FileName(query) and the
// cheapest n to TopFileName, both inside dir
func ExportAll(exp exporter.Exporter, dir, query string, listings []crawler.Listing, n int) error {
	if err := exp.Export(listings, filepath.Join(dir, exporter.FileName(query))); err != nil {
		return err
	}
	return exp.Export(Top(listings, n), filepath.Join(dir, exporter.TopFileName))
}

// collect runs every crawler and concatenates results in crawler order
func (c *Comparer) collect(ctx context.Context, query string) []crawler.Listing {
	results := make([][]crawler.Listing, len(c.crawlers))

	if c.concurrent {
		var wg sync.WaitGroup
		for i, cr := range c.crawlers {
			wg.Add(1)
			go func(i int, cr crawler.Crawler) {
				defer wg.Done()
				results[i] = c.fetch(ctx, cr, query)
			}(i, cr)
		}
		wg.Wait()
	} else {
		for i, cr := range c.crawlers {
			results[i] = c.fetch(ctx, cr, query)
		}
	}

	return slices.Concat(results...)
}

// fetch isolates one crawler: a panic is recovered and counted as no listings
func (c *Comparer) fetch(ctx context.Context, cr crawler.Crawler, query string) (listings []crawler.Listing) {
	defer func() {
		if r := recover(); r != nil {
			c.reporter.LogError(cr.GetProvider(), fmt.Errorf("crawler panicked: %v", r))
			listings = nil
		}
	}()

	listings = cr.FetchListings(ctx, query)
	logger.ForCrawler(cr.GetName()).Debug().
		Int("listings", len(listings)).
		Msg("Crawler finished")
	return listings
}

// SortByPrice orders listings by ascending price, keeping arrival order for ties
func SortByPrice(listings []crawler.Listing) {
	slices.SortStableFunc(listings, func(a, b crawler.Listing) int {
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		default:
			return 0
		}
	})
}

// Top returns the n cheapest listings of an already sorted set
func Top(listings []crawler.Listing, n int) []crawler.Listing {
	if n < 0 {
		n = 0
	}
	if len(listings) < n {
		n = len(listings)
	}
	return listings[:n]
}
