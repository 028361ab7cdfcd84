package adapters

import (
	"context"
	"fmt"
	"strings"

	"danawa-crawler/cache"
	"danawa-crawler/internal/types"
	"danawa-crawler/utils"

	"github.com/PuerkitoBio/goquery"
)

// BaseAdapter provides common functionality for listing adapters: page
// retrieval (cache, plain HTTP or headless browser) and goquery helpers.
type BaseAdapter struct {
	config        *types.Config        // Configuration settings (timeouts, browser settings, etc.)
	logger        types.Logger         // Structured logging interface
	cache         cache.Cache          // Page cache shared across requests
	httpClient    *utils.HTTPClient    // HTTP client for standard requests
	browserClient *utils.BrowserClient // Headless browser client for dynamic content
}

// NewBaseAdapter creates a new base adapter with initialized HTTP and browser clients.
// A nil pageCache disables caching.
func NewBaseAdapter(config *types.Config, logger types.Logger, pageCache cache.Cache) *BaseAdapter {
	if pageCache == nil {
		pageCache = cache.Noop{}
	}
	return &BaseAdapter{
		config:        config,
		logger:        logger,
		cache:         pageCache,
		httpClient:    utils.NewHTTPClient(config, logger),
		browserClient: utils.NewBrowserClient(config, logger),
	}
}

// GetPageContent retrieves the HTML content of a page using either HTTP client or headless browser.
// The choice between HTTP and browser is determined by the UseHeadlessBrowser configuration.
func (b *BaseAdapter) GetPageContent(ctx context.Context, url string) (string, error) {
	if html, ok := b.cache.Get(ctx, url); ok {
		b.logger.Debugf("Cache hit for %s", url)
		return html, nil
	}

	var (
		html string
		err  error
	)
	if b.config.UseHeadlessBrowser {
		html, err = b.browserClient.GetPageContent(ctx, url)
	} else {
		html, err = b.httpClient.GetHTML(ctx, url)
	}
	if err != nil {
		return "", err
	}

	if err := b.cache.Set(ctx, url, html); err != nil {
		b.logger.Warnf("Failed to cache %s: %v", url, err)
	}
	return html, nil
}

// ParseHTML parses HTML content into a goquery document
func (b *BaseAdapter) ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ExtractListing collects the items matched by itemSelector. Item texts are
// whitespace-normalized and joined with a single space; names are taken from
// nameSelector across all items, in document order.
func (b *BaseAdapter) ExtractListing(doc *goquery.Document, itemSelector, nameSelector string) (*types.Listing, error) {
	items := doc.Find(itemSelector)
	if items.Length() == 0 {
		return nil, fmt.Errorf("%w: selector %s matched nothing", ErrNoProducts, itemSelector)
	}

	texts := make([]string, 0, items.Length())
	items.Each(func(i int, s *goquery.Selection) {
		texts = append(texts, NormalizeSpace(BlockText(s)))
	})

	var names []string
	items.Find(nameSelector).Each(func(i int, s *goquery.Selection) {
		names = append(names, NormalizeSpace(s.Text()))
	})

	return &types.Listing{
		Names:     names,
		Text:      strings.Join(texts, " "),
		ItemCount: items.Length(),
	}, nil
}

// blockElements start a new line when a page is rendered; their text must not
// run into the text around them.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tbody": true, "td": true, "th": true, "thead": true, "tr": true, "ul": true,
}

// BlockText returns the text of s with a space around every block element, so
// adjacent blocks stay separate words even in minified markup. Inline elements
// such as <strong> are joined to their neighbours as in Selection.Text.
func BlockText(s *goquery.Selection) string {
	var sb strings.Builder
	var walk func(*goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, c *goquery.Selection) {
			switch name := goquery.NodeName(c); {
			case name == "#text":
				sb.WriteString(c.Nodes[0].Data)
			case blockElements[name]:
				sb.WriteByte(' ')
				walk(c)
				sb.WriteByte(' ')
			default:
				walk(c)
			}
		})
	}
	walk(s)
	return sb.String()
}

// NormalizeSpace trims text and collapses internal whitespace runs to one space
func NormalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Close cleans up resources
func (b *BaseAdapter) Close() {
	if b.httpClient != nil {
		b.httpClient.Close()
	}
}

// Config returns the config field of the BaseAdapter
func (b *BaseAdapter) Config() *types.Config {
	return b.config
}
