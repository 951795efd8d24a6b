package presenter

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"sjsage522/pricecompare/internal/crawler"
)

const barWidth = 40

// Console renders ranked listings for a terminal
type Console struct {
	out  io.Writer
	topN int
}

// NewConsole creates a console presenter showing the cheapest topN listings
func NewConsole(out io.Writer, topN int) *Console {
	return &Console{out: out, topN: topN}
}

// FormatPrice returns the display form of a price, e.g. ₦1,234,500
func FormatPrice(price float64) string {
	return "₦" + humanize.Commaf(price)
}

// Consume implements comparer.Sink
func (c *Console) Consume(query string, listings []crawler.Listing) error {
	top := listings
	if len(top) > c.topN {
		top = top[:c.topN]
	}

	if _, err := fmt.Fprintf(c.out, "Top %d results for %q (%d total)\n\n", len(top), query, len(listings)); err != nil {
		return err
	}
	if err := c.table(top); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(c.out); err != nil {
		return err
	}
	return c.chart(top)
}

func (c *Console) table(listings []crawler.Listing) error {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPRODUCT\tPRICE\tSTORE\tURL")
	for i, l := range listings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, l.Name, FormatPrice(l.Price), l.Source, l.Link)
	}
	return w.Flush()
}

// chart draws one bar per listing scaled to the most expensive one
func (c *Console) chart(listings []crawler.Listing) error {
	var maxPrice float64
	for _, l := range listings {
		maxPrice = math.Max(maxPrice, l.Price)
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 1, ' ', 0)
	for _, l := range listings {
		n := 0
		if maxPrice > 0 {
			n = int(math.Round(l.Price / maxPrice * barWidth))
		}
		fmt.Fprintf(w, "%s (%s)\t%s %s\n", truncate(l.Name, 30), l.Source, strings.Repeat("█", n), FormatPrice(l.Price))
	}
	return w.Flush()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
