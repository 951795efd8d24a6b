package presenter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/pricecompare/internal/crawler"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₦1,234,500", FormatPrice(1234500))
	assert.Equal(t, "₦45,000", FormatPrice(45000))
	assert.Equal(t, "₦0", FormatPrice(0))
}

func TestConsumeRendersTopN(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, 2)

	listings := []crawler.Listing{
		{Name: "Samsung Galaxy S24 128GB", Price: 600000, Source: "Slot", Link: "https://slot.ng/a"},
		{Name: "Samsung Galaxy S24 256GB", Price: 1200000, Source: "Jumia", Link: "https://jumia.com.ng/b"},
		{Name: "Samsung Galaxy S24 Ultra", Price: 1800000, Source: "Jumia", Link: "https://jumia.com.ng/c"},
	}
	require.NoError(t, console.Consume("samsung galaxy s24", listings))

	out := buf.String()
	assert.Contains(t, out, `Top 2 results for "samsung galaxy s24" (3 total)`)
	assert.Contains(t, out, "₦600,000")
	assert.Contains(t, out, "₦1,200,000")
	assert.NotContains(t, out, "Ultra")

	// The most expensive shown listing gets the full bar, the other half of it
	assert.Contains(t, out, strings.Repeat("█", barWidth)+" ₦1,200,000")
	assert.Contains(t, out, strings.Repeat("█", barWidth/2)+" ₦600,000")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 30))
	assert.Equal(t, "abc…", truncate("abcdef", 4))
}
