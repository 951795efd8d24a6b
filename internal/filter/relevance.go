// Package filter decides which listings are about the searched product.
package filter

import (
	"fmt"
	"strings"

	"sjsage522/pricecompare/internal/crawler"
)

// Policy narrows a listing set to the ones matching query.
// Implementations keep the input order.
type Policy interface {
	Filter(listings []crawler.Listing, query string) []crawler.Listing
}

// Tiered keeps exact phrase matches when there are any, and otherwise
// falls back to listings containing every query word.
type Tiered struct{}

// Filter implements Policy
func (Tiered) Filter(listings []crawler.Listing, query string) []crawler.Listing {
	phrase := strings.ToLower(query)

	exact := keep(listings, func(name string) bool {
		return strings.Contains(name, phrase)
	})
	if len(exact) > 0 {
		return exact
	}

	tokens := strings.Fields(phrase)
	return keep(listings, func(name string) bool {
		return containsAll(name, tokens)
	})
}

// DefaultBlacklist lists accessory words that mark a listing as not the product
var DefaultBlacklist = []string{
	"case", "cover", "pouch", "protector", "tempered glass", "screen guard",
	"charger", "cable", "adapter", "holder", "skin", "strap",
}

// Keyword requires the first query word (brand) and the last query word
// (keyword) and rejects names containing any blacklisted word.
type Keyword struct {
	Blacklist []string
}

// Filter implements Policy
func (k Keyword) Filter(listings []crawler.Listing, query string) []crawler.Listing {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return keep(listings, func(string) bool { return true })
	}
	brand, keyword := tokens[0], tokens[len(tokens)-1]

	blacklist := k.Blacklist
	if blacklist == nil {
		blacklist = DefaultBlacklist
	}

	return keep(listings, func(name string) bool {
		if !strings.Contains(name, brand) || !strings.Contains(name, keyword) {
			return false
		}
		for _, word := range blacklist {
			if strings.Contains(name, strings.ToLower(word)) {
				return false
			}
		}
		return true
	})
}

// ForName returns the policy configured by name
func ForName(name string, blacklist []string) (Policy, error) {
	switch name {
	case "", "tiered":
		return Tiered{}, nil
	case "keyword":
		return Keyword{Blacklist: blacklist}, nil
	default:
		return nil, fmt.Errorf("unknown filter policy: %s", name)
	}
}

func keep(listings []crawler.Listing, match func(name string) bool) []crawler.Listing {
	kept := make([]crawler.Listing, 0, len(listings))
	for _, l := range listings {
		if match(strings.ToLower(l.Name)) {
			kept = append(kept, l)
		}
	}
	return kept
}

func containsAll(name string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(name, token) {
			return false
		}
	}
	return true
}
