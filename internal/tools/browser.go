package tools

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/cockroachdb/errors"
)

// BrowserTool renders pages in a headless Chrome that is started on first use
// and kept alive until Close.
type BrowserTool struct {
	Timeout time.Duration

	mu            sync.Mutex
	browserCtx    context.Context
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
}

func NewBrowserTool() *BrowserTool {
	return &BrowserTool{Timeout: 60 * time.Second}
}

func (b *BrowserTool) Name() string {
	return "browser"
}

func (b *BrowserTool) Description() string {
	return "Open a URL in a headless browser, run its JavaScript and return the visible page text. Prefer 'scraper' for static articles. Input is the full URL."
}

func (b *BrowserTool) ensureBrowser() (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browserCtx != nil {
		select {
		case <-b.browserCtx.Done():
			b.cleanup()
		default:
			return b.browserCtx, nil
		}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}

	b.browserCtx, b.browserCancel, b.allocCancel = browserCtx, browserCancel, allocCancel
	return b.browserCtx, nil
}

func (b *BrowserTool) cleanup() {
	if b.browserCancel != nil {
		b.browserCancel()
	}
	if b.allocCancel != nil {
		b.allocCancel()
	}
	b.browserCtx = nil
	b.browserCancel = nil
	b.allocCancel = nil
}

// Close shuts the browser down. It is safe to call more than once.
func (b *BrowserTool) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cleanup()
	return nil
}

func (b *BrowserTool) Execute(ctx context.Context, input string) (string, error) {
	target := field(input, "url")
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Sprintf("Error: %q is not an absolute URL", target), nil
	}

	browserCtx, err := b.ensureBrowser()
	if err != nil {
		return "", errors.Wrap(err, "failed to start browser")
	}

	tabCtx, closeTab := chromedp.NewContext(browserCtx)
	defer closeTab()
	tabCtx, cancel := context.WithTimeout(tabCtx, b.Timeout)
	defer cancel()

	// Propagate caller cancellation into the tab.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var title, text string
	err = chromedp.Run(tabCtx,
		chromedp.Navigate(u.String()),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Title(&title),
		chromedp.Text("body", &text, chromedp.ByQuery, chromedp.NodeVisible),
	)
	if err != nil {
		return fmt.Sprintf("Browser failed to load %s: %v", u, err), nil
	}

	if len(text) > maxScrapeChars {
		text = text[:maxScrapeChars] + "\n... (truncated)"
	}
	return fmt.Sprintf("TITLE: %s\n\n%s", title, text), nil
}
