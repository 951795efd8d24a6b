package comparer

import (
	"math"

	"sjsage522/pricecompare/internal/crawler"
)

// Summary describes a ranked result set
type Summary struct {
	Count        int
	MinPrice     float64
	MaxPrice     float64
	AveragePrice float64
	Cheapest     crawler.Listing
	BySource     map[string]int
}

// Summarize computes price statistics over listings
func Summarize(listings []crawler.Listing) Summary {
	summary := Summary{BySource: make(map[string]int)}
	if len(listings) == 0 {
		return summary
	}

	var sum float64
	minPrice, maxPrice := math.MaxFloat64, -1.0
	for _, l := range listings {
		summary.BySource[l.Source]++
		sum += l.Price
		if l.Price < minPrice {
			minPrice = l.Price
			summary.Cheapest = l
		}
		if l.Price > maxPrice {
			maxPrice = l.Price
		}
	}

	summary.Count = len(listings)
	summary.MinPrice = minPrice
	summary.MaxPrice = maxPrice
	summary.AveragePrice = sum / float64(len(listings))
	return summary
}
