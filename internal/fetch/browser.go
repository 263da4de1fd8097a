// Package fetch - browser.go renders pages that only produce their content after JavaScript runs.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/orcid-cv/internal/logger"
)

// settleDelay gives client-side rendering time to populate the page.
const settleDelay = 2 * time.Second

// WithBrowser renders a page in a headless browser and returns the rendered HTML.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, log *logger.Logger) (string, error) {
	log = logger.OrNop(log)
	log.Debug("starting headless browser", "url", url)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	log.Debug("rendered page", "url", url, "bytes", len(html))
	return html, nil
}

// Browser adapts WithBrowser to a fixed timeout and logger so it can be
// passed around as a page renderer.
type Browser struct {
	Timeout time.Duration
	Log     *logger.Logger
}

// Render returns the rendered HTML of url.
func (b *Browser) Render(ctx context.Context, url string) (string, error) {
	if b == nil {
		return "", fmt.Errorf("browser rendering disabled")
	}
	return WithBrowser(ctx, url, b.Timeout, b.Log)
}
