package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"danawa-crawler/internal/types"
)

// BrowserClient provides headless browser functionality
type BrowserClient struct {
	config *types.Config
	logger types.Logger
}

// NewBrowserClient creates a new browser client
func NewBrowserClient(config *types.Config, logger types.Logger) *BrowserClient {
	return &BrowserClient{
		config: config,
		logger: logger,
	}
}

// allocatorOptions returns the exec allocator flags used for every page load
func (b *BrowserClient) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	return append(opts,
		chromedp.UserAgent(b.config.UserAgent),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)
}

// GetPageContent retrieves the HTML content of a page using headless browser.
// When WaitSelector is set the page is read once that element is present.
func (b *BrowserClient) GetPageContent(ctx context.Context, url string) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	defer cancel()

	// chromedp is chatty; route its output to debug level
	browserCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(b.logger.Debugf),
		chromedp.WithErrorf(b.logger.Debugf),
	)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.config.Timeout)
	defer cancel()

	actions := []chromedp.Action{chromedp.Navigate(url)}
	if b.config.WaitSelector != "" {
		actions = append(actions, chromedp.WaitReady(b.config.WaitSelector, chromedp.ByQuery))
	} else {
		actions = append(actions, chromedp.Sleep(500*time.Millisecond))
	}

	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html))

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", fmt.Errorf("failed to get page content: %w", err)
	}

	b.logger.Debugf("Successfully retrieved page content from %s (%d bytes)", url, len(html))
	return html, nil
}
