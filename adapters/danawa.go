package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"danawa-crawler/cache"
	"danawa-crawler/internal/types"
)

const (
	listItemSelector    = "li.prod_item.prod_layer"
	productNameSelector = "a[name='productName']"
)

// ErrNoProducts is returned when a listing page contains no product items
var ErrNoProducts = errors.New("no products found")

// categories known to the crawler. Boilers and washing machines list an
// efficiency grade instead of a power figure.
var categories = []types.Category{
	{Code: "1022811", Name: "TV", PowerUnit: "W", HasPower: true},
	{Code: "10338815", Name: "전자레인지", PowerUnit: "W", HasPower: true},
	{Code: "10251508", Name: "냉장고", PowerUnit: "kWh(월)", HasPower: true},
	{Code: "1022644", Name: "에어컨", PowerUnit: "kW", HasPower: true},
	{Code: "10330122", Name: "보일러", HasPower: false},
	{Code: "10244107", Name: "드럼세탁기", HasPower: false},
	{Code: "10244730", Name: "일반세탁기", HasPower: false},
}

// Categories returns the known categories
func Categories() []types.Category {
	out := make([]types.Category, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory returns the registered category for code. Unregistered codes
// are assumed to carry power data.
func LookupCategory(code string) (types.Category, bool) {
	for _, c := range categories {
		if c.Code == code {
			return c, true
		}
	}
	return types.Category{Code: code, HasPower: true}, false
}

// DanawaAdapter handles extraction for prod.danawa.com category listings
type DanawaAdapter struct {
	*BaseAdapter
}

// NewDanawaAdapter creates a new Danawa adapter
func NewDanawaAdapter(config *types.Config, logger types.Logger, pageCache cache.Cache) *DanawaAdapter {
	return &DanawaAdapter{
		BaseAdapter: NewBaseAdapter(config, logger, pageCache),
	}
}

// GetStoreName returns the store name
func (d *DanawaAdapter) GetStoreName() string {
	return "danawa.com"
}

// CategoryURL returns the listing URL for a category code
func (d *DanawaAdapter) CategoryURL(code string) string {
	return d.config.BaseURL + code
}

// GetListing fetches and parses the listing page of a category
func (d *DanawaAdapter) GetListing(ctx context.Context, category types.Category) (*types.Listing, error) {
	startTime := time.Now()
	listURL := d.CategoryURL(category.Code)
	d.logger.Debugf("Fetching listing page: %s", listURL)

	html, err := d.GetPageContent(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing page: %w", err)
	}

	doc, err := d.ParseHTML(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	listing, err := d.ExtractListing(doc, listItemSelector, productNameSelector)
	if err != nil {
		return nil, err
	}
	listing.URL = listURL

	d.logger.Infof("Found %d items and %d product names on %s in %v", listing.ItemCount, len(listing.Names), listURL, time.Since(startTime))
	return listing, nil
}
