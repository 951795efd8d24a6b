package helpers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"golang.org/x/net/html/charset"

	pkgerrors "sjsage522/pricecompare/pkg/errors"
)

// Headers is the immutable set of request headers sent with every fetch.
// It is passed by value so no caller can mutate another caller's headers.
type Headers struct {
	UserAgent      string
	Accept         string
	AcceptLanguage string
}

// DefaultHeaders returns browser-like headers for the given user agent
func DefaultHeaders(userAgent string) Headers {
	return Headers{
		UserAgent:      userAgent,
		Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		AcceptLanguage: "en-NG,en;q=0.9",
	}
}

func (h Headers) apply(req *http.Request) {
	req.Header.Set("User-Agent", h.UserAgent)
	if h.Accept != "" {
		req.Header.Set("Accept", h.Accept)
	}
	if h.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", h.AcceptLanguage)
	}
}

// Fetcher retrieves a page body by URL
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers Headers) (io.Reader, error)
}

// HTTPFetcher issues a single GET per call, without retries
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPFetcher creates a fetcher bounded by the given per-request timeout
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Fetch sends a GET request with the given headers, converts the response
// body to UTF-8 (if needed), and returns it as an io.Reader.
// Errors are *errors.CrawlerError values of a transport type.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, headers Headers) (io.Reader, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.NewNetwork(url, "failed to create request", err)
	}
	headers.apply(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, pkgerrors.NewNetwork(url, "failed to fetch URL", err)
	}
	defer resp.Body.Close()

	// Check for rate limiting
	if slices.Contains([]int{http.StatusTooManyRequests, 430}, resp.StatusCode) {
		return nil, pkgerrors.NewRateLimit(url, resp.Header.Get("Retry-After"))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, pkgerrors.NewStatus(url, resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.NewNetwork(url, "failed to read response body", err)
	}

	return toUTF8(bodyBytes, resp.Header.Get("Content-Type"))
}

// toUTF8 determines the encoding from Content-Type header and body content
func toUTF8(body []byte, contentType string) (io.Reader, error) {
	encoding, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || name == "UTF-8" {
		return bytes.NewReader(body), nil
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, encoding.NewDecoder().Reader(bytes.NewReader(body))); err != nil {
		return nil, fmt.Errorf("failed to read converted UTF-8 body: %w", err)
	}
	return &buf, nil
}
