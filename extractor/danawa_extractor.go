package extractor

import (
	"context"
	"fmt"
	"time"

	"danawa-crawler/adapters"
	"danawa-crawler/cache"
	"danawa-crawler/fields"
	"danawa-crawler/internal/types"
)

// DanawaExtractor turns a Danawa category listing into product rows
type DanawaExtractor struct {
	adapter *adapters.DanawaAdapter
	logger  types.Logger
}

// NewDanawaExtractor creates a new Danawa extractor
func NewDanawaExtractor(config *types.Config, logger types.Logger, pageCache cache.Cache) *DanawaExtractor {
	return &DanawaExtractor{
		adapter: adapters.NewDanawaAdapter(config, logger, pageCache),
		logger:  logger,
	}
}

// Extract fetches the listing for a category code and extracts name, power
// and price for every product name on the page.
func (d *DanawaExtractor) Extract(ctx context.Context, code string) (*types.CategoryResult, error) {
	startTime := time.Now()
	category, known := adapters.LookupCategory(code)
	if !known {
		d.logger.Warnf("Category %s is not registered; assuming it lists power consumption", code)
	}

	d.logger.Infof("Starting extraction for category %s (%s)", category.Code, category.Name)

	listing, err := d.adapter.GetListing(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", code, err)
	}

	var powers []float64
	if category.HasPower {
		powers = fields.ExtractPowers(listing.Text)
	} else {
		d.logger.Debugf("Category %s has no power data, skipping power extraction", code)
	}
	prices := fields.ExtractPrices(listing.Text)

	count := len(listing.Names)
	result := &types.CategoryResult{
		Category:  category,
		URL:       listing.URL,
		Products:  fields.Combine(count, listing.Names, powers, prices),
		Warnings:  alignmentWarnings(count, category.HasPower, powers, prices),
		FetchedAt: time.Now().UTC(),
	}

	for _, w := range result.Warnings {
		d.logger.Warn(w)
	}
	d.logger.Infof("Extracted %d products for category %s in %v", len(result.Products), code, time.Since(startTime))

	return result, nil
}

// alignmentWarnings reports when the extracted values cannot cover the
// products one to one. Values are still matched by position.
func alignmentWarnings(count int, hasPower bool, powers []float64, prices []int64) []string {
	var warnings []string
	if hasPower && len(powers) != count {
		warnings = append(warnings, fmt.Sprintf("extracted %d power values for %d products; values are matched by position and may be misaligned", len(powers), count))
	}
	if len(prices) != count {
		warnings = append(warnings, fmt.Sprintf("extracted %d prices for %d products; values are matched by position and may be misaligned", len(prices), count))
	}
	return warnings
}

// Close cleans up resources
func (d *DanawaExtractor) Close() {
	if d.adapter != nil {
		d.adapter.Close()
	}
}
