package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sjsage522/pricecompare/internal/crawler"
)

func listingsNamed(names ...string) []crawler.Listing {
	listings := make([]crawler.Listing, len(names))
	for i, name := range names {
		listings[i] = crawler.Listing{Name: name, Price: float64(i + 1), Source: "Test"}
	}
	return listings
}

func names(listings []crawler.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.Name
	}
	return out
}

func TestTieredExactPhrase(t *testing.T) {
	input := listingsNamed("Samsung Galaxy S24 Ultra Case", "Samsung Galaxy S24 5G 256GB")

	result := Tiered{}.Filter(input, "samsung galaxy s24")
	assert.Equal(t, []string{"Samsung Galaxy S24 Ultra Case", "Samsung Galaxy S24 5G 256GB"}, names(result))
}

func TestTieredExactPhraseIsExclusive(t *testing.T) {
	// The second name holds every word but not the phrase; it is ignored
	// because the first is an exact match
	input := listingsNamed("Tecno Spark 20 Pro", "Spark Pro 20 by Tecno")

	result := Tiered{}.Filter(input, "Tecno Spark 20")
	assert.Equal(t, []string{"Tecno Spark 20 Pro"}, names(result))
}

func TestTieredAllWordsFallback(t *testing.T) {
	input := listingsNamed("Redmi Note 14 Pro Max 5G", "Infinix Note 14")

	result := Tiered{}.Filter(input, "redmi note 14 pro")
	assert.Equal(t, []string{"Redmi Note 14 Pro Max 5G"}, names(result))
}

func TestTieredFallbackIsOrderIndependent(t *testing.T) {
	input := listingsNamed("Pro 14 Note Redmi", "Redmi Note 13")

	result := Tiered{}.Filter(input, "REDMI NOTE 14 PRO")
	assert.Equal(t, []string{"Pro 14 Note Redmi"}, names(result))
}

func TestTieredNoMatch(t *testing.T) {
	result := Tiered{}.Filter(listingsNamed("Nokia 105"), "iphone 15")
	assert.Empty(t, result)
}

func TestTieredEmptyQueryPassesEverything(t *testing.T) {
	input := listingsNamed("Nokia 105", "HP Laptop")
	assert.Equal(t, input, Tiered{}.Filter(input, ""))

	assert.Empty(t, Tiered{}.Filter(nil, ""))
}

func TestKeywordPolicy(t *testing.T) {
	input := listingsNamed(
		"Samsung Galaxy S24 Ultra Case",
		"Samsung Galaxy S24 5G 256GB",
		"Galaxy S24 Tempered Glass",
		"Samsung Galaxy A15",
	)

	result := Keyword{}.Filter(input, "Samsung Galaxy S24")
	assert.Equal(t, []string{"Samsung Galaxy S24 5G 256GB"}, names(result))

	// A custom blacklist replaces the default one
	result = Keyword{Blacklist: []string{"5G"}}.Filter(input, "Samsung Galaxy S24")
	assert.Equal(t, []string{"Samsung Galaxy S24 Ultra Case"}, names(result))

	assert.Len(t, Keyword{}.Filter(input, "  "), 4)
}

func TestForName(t *testing.T) {
	policy, err := ForName("tiered", nil)
	assert.NoError(t, err)
	assert.IsType(t, Tiered{}, policy)

	policy, err = ForName("keyword", []string{"case"})
	assert.NoError(t, err)
	assert.Equal(t, Keyword{Blacklist: []string{"case"}}, policy)

	_, err = ForName("fuzzy", nil)
	assert.Error(t, err)
}
