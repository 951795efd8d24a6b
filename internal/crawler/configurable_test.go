package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/pricecompare/config"
	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/internal"
)

const jumiaHTML = `<html><body><div class="-paxs row _no-g _4cl-3cm-shs">
	<article class="prd _fb col c-prd">
		<a class="core" href="/samsung-galaxy-s24-256gb-123.html">
			<div class="info"><h3 class="name">Samsung Galaxy S24 5G 256GB</h3><div class="prc">₦1,234,500</div></div>
		</a>
	</article>
	<article class="prd _fb col c-prd">
		<a class="core" href="samsung-galaxy-s24-case-456.html">
			<div class="info"><h3 class="name">Samsung Galaxy S24 Ultra Case</h3><div class="prc">₦4,500 - ₦6,000</div></div>
		</a>
	</article>
	<article class="prd _fb col c-prd">
		<a class="core" href="/no-price-789.html">
			<div class="info"><h3 class="name">Out Of Stock Phone</h3><div class="prc">Price on request</div></div>
		</a>
	</article>
	<article class="prd _fb col c-prd">
		<a class="core" href="/no-name-000.html"><div class="info"><div class="prc">₦9,000</div></div></a>
	</article>
</div></body></html>`

const slotHTML = `<html><body><ol class="products list items product-items">
	<li class="item product product-item">
		<a class="product-item-link" href="https://slot.ng/samsung-galaxy-s24.html">Samsung Galaxy S24 128GB</a>
		<span class="price">NGN 1,150,000</span>
	</li>
	<li class="item product product-item">
		<a class="product-item-link" href="https://slot.ng/samsung-galaxy-s24-fe.html">Samsung Galaxy S24 FE</a>
		<span class="price-box"><span class="price">₦899,000</span><span class="price">₦950,000</span></span>
	</li>
	<li class="item product product-item">
		<a class="product-item-link">Link Missing</a>
		<span class="price">₦10,000</span>
	</li>
	<li class="item product product-item">
		<a class="product-item-link" href="https://slot.ng/no-price.html">No Price Tag</a>
	</li>
</ol></body></html>`

func testConfig(jumiaURL, slotURL string) *config.Config {
	cfg := config.LoadConfig()
	cfg.JumiaURL = jumiaURL
	cfg.SlotURL = slotURL
	cfg.RequestTimeout = time.Second
	return cfg
}

func newStorefront(t *testing.T, html string, queries chan<- string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		if queries != nil {
			queries <- r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestJumiaCrawler(t *testing.T) {
	queries := make(chan string, 1)
	server := newStorefront(t, jumiaHTML, queries)
	reporter := &MockReporter{}

	cfg := testConfig(server.URL+"/catalog/?q=", "http://unused.invalid/?q=")
	crawler := NewJumiaCrawler(cfg, internal.Dependencies{
		Cache:    NewMockCacheService(),
		Fetcher:  helpers.NewHTTPFetcher(cfg.RequestTimeout),
		Reporter: reporter,
	})

	listings := crawler.FetchListings(context.Background(), "samsung galaxy s24")
	assert.Equal(t, "q=samsung%20galaxy%20s24", <-queries)
	assert.Empty(t, reporter.Errors())

	require.Len(t, listings, 2)
	assert.Equal(t, Listing{
		Name:   "Samsung Galaxy S24 5G 256GB",
		Price:  1234500,
		Source: "Jumia",
		Link:   server.URL + "/samsung-galaxy-s24-256gb-123.html",
	}, listings[0])
	assert.Equal(t, "Samsung Galaxy S24 Ultra Case", listings[1].Name)
	assert.Equal(t, float64(4500), listings[1].Price)
	// Links without a leading slash still resolve against the site root
	assert.Equal(t, server.URL+"/samsung-galaxy-s24-case-456.html", listings[1].Link)
}

func TestSlotCrawler(t *testing.T) {
	queries := make(chan string, 1)
	server := newStorefront(t, slotHTML, queries)
	reporter := &MockReporter{}

	cfg := testConfig("http://unused.invalid/?q=", server.URL+"/index.php/catalogsearch/result/?q=")
	crawler := NewSlotCrawler(cfg, internal.Dependencies{
		Fetcher:  helpers.NewHTTPFetcher(cfg.RequestTimeout),
		Reporter: reporter,
	})

	listings := crawler.FetchListings(context.Background(), "samsung galaxy s24")
	assert.Equal(t, "q=samsung+galaxy+s24", <-queries)
	assert.Empty(t, reporter.Errors())

	require.Len(t, listings, 2)
	assert.Equal(t, Listing{
		Name:   "Samsung Galaxy S24 128GB",
		Price:  1150000,
		Source: "Slot",
		Link:   "https://slot.ng/samsung-galaxy-s24.html",
	}, listings[0])
	// The first price in the box wins
	assert.Equal(t, float64(899000), listings[1].Price)
}

func TestFetchListingsReportsTransportFaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	reporter := &MockReporter{}
	cfg := testConfig(server.URL+"/catalog/?q=", "http://unused.invalid/?q=")
	crawler := NewJumiaCrawler(cfg, internal.Dependencies{
		Fetcher:  helpers.NewHTTPFetcher(cfg.RequestTimeout),
		Reporter: reporter,
	})

	listings := crawler.FetchListings(context.Background(), "iphone 15")
	assert.Empty(t, listings)

	errs := reporter.Errors()
	require.Len(t, errs, 1)
	assert.True(t, strings.HasPrefix(errs[0], "Jumia: "))
	assert.Contains(t, errs[0], "unexpected status code: 502")
}

func TestFetchListingsBlockedSource(t *testing.T) {
	mockCache := NewMockCacheService()
	mockCache.Set("slot_rate_limited", []byte("500"), 500*time.Second)
	fetcher := &stubFetcher{body: slotHTML}
	reporter := &MockReporter{}

	crawler := NewSlotCrawler(testConfig("http://a.invalid/?q=", "http://b.invalid/?q="), internal.Dependencies{
		Cache:    mockCache,
		Fetcher:  fetcher,
		Reporter: reporter,
	})

	assert.Empty(t, crawler.FetchListings(context.Background(), "tv"))
	assert.Equal(t, 0, fetcher.calls)
	require.Len(t, reporter.Errors(), 1)
	assert.Contains(t, reporter.Errors()[0], "rate_limit")
}

func TestProcessListingSkipsPartialContainers(t *testing.T) {
	crawler := NewConfigurableCrawler(CrawlerConfig{
		BaseURL:      "https://shop.example",
		ResolveLinks: true,
		Provider:     "Test",
		Selectors: Selectors{
			ListingList: "div.item",
			Name:        "h3",
			Price:       "span.price",
			Link:        "a",
		},
		PriceNoise: "₦,",
	}, internal.Dependencies{Reporter: &MockReporter{}})

	testCases := []struct {
		name string
		html string
		ok   bool
	}{
		{"complete", `<div class="item"><h3>TV</h3><span class="price">₦100</span><a href="/tv">x</a></div>`, true},
		{"blank name", `<div class="item"><h3>  </h3><span class="price">₦100</span><a href="/tv">x</a></div>`, false},
		{"missing price", `<div class="item"><h3>TV</h3><a href="/tv">x</a></div>`, false},
		{"price without digits", `<div class="item"><h3>TV</h3><span class="price">Sold out</span><a href="/tv">x</a></div>`, false},
		{"missing href", `<div class="item"><h3>TV</h3><span class="price">₦100</span><a>x</a></div>`, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tc.html))
			require.NoError(t, err)

			listing := crawler.processListing(doc.Find("div.item"))
			if !tc.ok {
				assert.Nil(t, listing)
				return
			}
			require.NotNil(t, listing)
			assert.Equal(t, "https://shop.example/tv", listing.Link)
			assert.Equal(t, float64(100), listing.Price)
			assert.Equal(t, "Test", listing.Source)
		})
	}
}

func TestCreateCrawlersOrder(t *testing.T) {
	crawlers := CreateCrawlers(config.LoadConfig(), internal.Dependencies{Reporter: &MockReporter{}})
	require.Len(t, crawlers, 2)
	assert.Equal(t, ProviderJumia, crawlers[0].GetProvider())
	assert.Equal(t, ProviderSlot, crawlers[1].GetProvider())
}
