package helpers

import (
	"net/url"
	"strings"
)

// EscapeQuery escapes a search term for a query parameter, encoding spaces
// as spaceToken ("+" or "%20") and everything else per RFC 3986
func EscapeQuery(query, spaceToken string) string {
	escaped := url.QueryEscape(query)
	if spaceToken == "+" {
		return escaped
	}
	return strings.ReplaceAll(escaped, "+", spaceToken)
}

// ResolveURL turns a relative link into an absolute one against baseURL
func ResolveURL(baseURL, link string) string {
	if baseURL == "" {
		return link
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}

// SiteRoot returns the scheme and host of rawURL as a root URL, dropping
// any path and query. It returns rawURL unchanged when it cannot be parsed.
func SiteRoot(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}).String()
}
