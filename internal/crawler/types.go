package crawler

import (
	"context"
	"time"

	"sjsage522/pricecompare/helpers"

	"github.com/PuerkitoBio/goquery"
)

// Listing represents one normalized product listing.
// It only exists once name, price and link were all extracted.
type Listing struct {
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Source string  `json:"source"`
	Link   string  `json:"link"`
}

// Crawler interface defines the contract for all source adapters
type Crawler interface {
	// FetchListings searches the source for query. Faults are reported
	// and result in an empty slice, never an error.
	FetchListings(ctx context.Context, query string) []Listing

	// GetName returns the crawler's name for logging and identification
	GetName() string

	// GetProvider returns the storefront identifier stamped on listings
	GetProvider() string
}

// ProcessorFunc defines the function signature for processing a single listing container
type ProcessorFunc func(*goquery.Selection) *Listing

// QueryEncoding is the token a storefront expects for a space in its search query
type QueryEncoding string

const (
	SpacePercent20 QueryEncoding = "%20"
	SpacePlus      QueryEncoding = "+"
)

// Selectors contains CSS selectors for the listing elements in a search page
type Selectors struct {
	ListingList string
	Name        string
	Price       string
	// Link is the element carrying the detail href; empty means the
	// listing container itself
	Link string
}

// CrawlerConfig contains configuration for a crawler
type CrawlerConfig struct {
	SearchURL string
	Encoding  QueryEncoding
	// BaseURL resolves relative links when ResolveLinks is set
	BaseURL      string
	ResolveLinks bool
	Provider     string
	CacheKey     string
	BlockTime    time.Duration
	Headers      helpers.Headers
	Selectors    Selectors

	PriceNoise            string
	AllowFractionalPrices bool
}
