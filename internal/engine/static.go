// internal/engine/static.go
package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/holdings/internal/ratelimit"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// DefaultUserAgent is sent when no user agent is configured
const DefaultUserAgent = "Holdings/1.0 (https://github.com/law-makers/holdings)"

// StaticFetcher implements Fetcher with plain HTTP requests and goquery
type StaticFetcher struct {
	client    *http.Client
	limiter   ratelimit.RateLimiter
	userAgent string
	headers   map[string]string
}

// NewStaticFetcher creates a StaticFetcher. limiter and headers may be nil.
func NewStaticFetcher(client *http.Client, lim ratelimit.RateLimiter, ua string, headers map[string]string) *StaticFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &StaticFetcher{
		client:    client,
		limiter:   lim,
		userAgent: ua,
		headers:   headers,
	}
}

// Name returns the name of this fetcher
func (s *StaticFetcher) Name() string {
	return "StaticFetcher"
}

// Fetch issues one GET for pageURL and parses the body as HTML
func (s *StaticFetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	start := time.Now()

	log.Debug().
		Str("url", pageURL).
		Str("fetcher", s.Name()).
		Msg("Starting fetch")

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, pageURL); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, NewFetchError(pageURL, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		log.Debug().Err(err).Str("url", pageURL).Msg("Unknown charset, reading body as UTF-8")
		body = resp.Body
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseError, pageURL, err)
	}

	log.Debug().
		Str("url", pageURL).
		Int("status", resp.StatusCode).
		Int64("response_time_ms", time.Since(start).Milliseconds()).
		Msg("Fetch completed")

	return doc, nil
}
