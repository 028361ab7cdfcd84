// Package fields pulls numeric attributes out of the flattened text of a
// category listing.
//
// The listing text is split on PowerMarker. Power figures are read from the
// segments after each marker, prices from every segment including the one
// before the first marker. The two sequences therefore do not necessarily
// line up with each other or with the product names; callers match them by
// position only.
package fields

import (
	"regexp"
	"strconv"
	"strings"

	"danawa-crawler/internal/types"
)

// PowerMarker is the label ("power consumption") that precedes a power figure.
const PowerMarker = "소비전력"

// UnknownName is used when there are fewer names than products.
const UnknownName = "Unknown"

var (
	// number directly followed by W, kW or kWh(월); RE2 has no lookahead so the unit is matched and ignored
	powerPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)(?:kWh\(월\)|kW|W)`)
	pricePattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*원`)
	nonDigit     = regexp.MustCompile(`[^\d]`)
)

// segments splits text on PowerMarker. Text without a marker has no segments.
func segments(text string) []string {
	if !strings.Contains(text, PowerMarker) {
		return nil
	}
	return strings.Split(text, PowerMarker)
}

// ExtractPowers returns the first power figure found after each marker.
func ExtractPowers(text string) []float64 {
	parts := segments(text)
	if len(parts) == 0 {
		return nil
	}

	var powers []float64
	for _, part := range parts[1:] {
		m := powerPattern.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		power, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		powers = append(powers, power)
	}
	return powers
}

// ExtractPrices returns the first won amount found in each segment,
// including the preamble before the first marker.
func ExtractPrices(text string) []int64 {
	var prices []int64
	for _, part := range segments(text) {
		match := pricePattern.FindString(part)
		if match == "" {
			continue
		}
		price, err := strconv.ParseInt(nonDigit.ReplaceAllString(match, ""), 10, 64)
		if err != nil {
			continue
		}
		prices = append(prices, price)
	}
	return prices
}

// Combine builds count products from the three sequences by index. Missing
// entries fall back to UnknownName, zero power and zero price; PowerFound
// marks the products that received an extracted power.
func Combine(count int, names []string, powers []float64, prices []int64) []types.ProductInfo {
	products := make([]types.ProductInfo, 0, count)
	for i := 0; i < count; i++ {
		p := types.ProductInfo{Name: UnknownName}
		if i < len(names) {
			p.Name = names[i]
		}
		if i < len(powers) {
			p.Power = powers[i]
			p.PowerFound = true
		}
		if i < len(prices) {
			p.Price = prices[i]
		}
		products = append(products, p)
	}
	return products
}
