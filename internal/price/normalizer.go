// Package price turns storefront price text into a canonical number.
package price

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// DefaultNoise covers the naira sign, the NGN code and thousands separators.
// Whitespace is noise for every normalizer.
const DefaultNoise = "₦NGN,"

var (
	digitRun   = regexp.MustCompile(`\d+`)
	decimalRun = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Normalizer extracts the first digit run of a price string once every
// noise character and all whitespace have been removed, so space grouped
// prices such as "₦ 1 234 500" keep every group.
//
// With AllowFraction unset a fractional part is dropped, so "$19.99"
// becomes 19. This matches what the storefronts have always produced.
type Normalizer struct {
	Noise         string
	AllowFraction bool
}

// Normalize returns the canonical price, or false when raw has no digits
func (n Normalizer) Normalize(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(n.Noise, r) {
			return -1
		}
		return r
	}, raw)

	pattern := digitRun
	if n.AllowFraction {
		pattern = decimalRun
	}

	match := pattern.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
