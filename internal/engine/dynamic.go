// internal/engine/dynamic.go
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/holdings/internal/ratelimit"
	"github.com/rs/zerolog/log"
)

// DynamicOptions configures the headless browser used by DynamicFetcher
type DynamicOptions struct {
	ChromePath string
	Headless   bool
	UserAgent  string
	Proxy      string
	Timeout    time.Duration
	// WaitSelector is awaited after navigation before the DOM is captured
	WaitSelector string
	Limiter      ratelimit.RateLimiter
}

// DynamicFetcher implements Fetcher using headless Chrome via chromedp.
// One browser process is started on the first Fetch and shared; every Fetch
// runs in its own tab, so concurrent calls are safe.
type DynamicFetcher struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	startOnce     sync.Once
	startErr      error
	opts          DynamicOptions
}

// NewDynamicFetcher prepares a browser allocator. Chrome is not launched
// until the first Fetch. Call Close to stop it.
func NewDynamicFetcher(opts DynamicOptions) *DynamicFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.WaitSelector == "" {
		opts.WaitSelector = "body"
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(opts.UserAgent),
	}
	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if path := FindChrome(opts.ChromePath); path != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, allocOpts...)
	}
	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return &DynamicFetcher{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		opts:          opts,
	}
}

// browser launches Chrome on first use and returns the context tabs derive from
func (d *DynamicFetcher) browser() (context.Context, error) {
	d.startOnce.Do(func() {
		log.Debug().Msg("Launching browser")
		if err := chromedp.Run(d.browserCtx); err != nil {
			d.startErr = fmt.Errorf("failed to start browser: %w", err)
		}
	})
	return d.browserCtx, d.startErr
}

// Name returns the name of this fetcher
func (d *DynamicFetcher) Name() string {
	return "DynamicFetcher"
}

// Fetch renders pageURL in a new tab and parses the resulting DOM
func (d *DynamicFetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	start := time.Now()

	if d.opts.Limiter != nil {
		if err := d.opts.Limiter.Wait(ctx, pageURL); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	browserCtx, err := d.browser()
	if err != nil {
		return nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	defer tabCancel()
	tabCtx, cancel := context.WithTimeout(tabCtx, d.opts.Timeout)
	defer cancel()

	// Tie the tab to the caller's context
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var (
		mu         sync.Mutex
		statusCode int64
		statusText string
	)
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		e, ok := ev.(*network.EventResponseReceived)
		if !ok || e.Type != network.ResourceTypeDocument {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		// First document response belongs to the main frame
		if statusCode == 0 {
			statusCode = e.Response.Status
			statusText = e.Response.StatusText
		}
	})

	var htmlContent string
	err = chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady(d.opts.WaitSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)

	mu.Lock()
	code, text := int(statusCode), statusText
	mu.Unlock()

	if code != 0 && code != 200 {
		return nil, NewFetchError(pageURL, code, text)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("chromedp execution failed for %s: %w", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseError, pageURL, err)
	}

	log.Debug().
		Str("url", pageURL).
		Int("status", code).
		Int64("response_time_ms", time.Since(start).Milliseconds()).
		Msg("Fetch completed")

	return doc, nil
}

// Close shuts down the browser
func (d *DynamicFetcher) Close() error {
	d.browserCancel()
	d.allocCancel()
	return nil
}
