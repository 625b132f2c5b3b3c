// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire performs the outbound fetches of the ingestion
// pipeline: the landing page's full metadata view and the attachment
// bitstream. All requests share a bounded timeout, a small retry budget
// for transient failures, and a polite rate limit.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/pdiddy/knowledge-engine/internal/httputil"
	"github.com/pdiddy/knowledge-engine/pkg/types"
)

// fullViewQuery selects the landing-page view that exposes every
// metadata tag.
const fullViewQuery = "?show=full"

// Fetcher issues the outbound HTTP requests for ingestion.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	cfg     types.FetchConfig
}

// NewFetcher creates a Fetcher. Zero config fields fall back to a 30 s
// timeout and 2 requests per second.
func NewFetcher(cfg types.FetchConfig) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 2
	}
	return &Fetcher{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		cfg:     cfg,
	}
}

// FetchPage retrieves the full metadata view of a landing page and
// parses it as an HTML document.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	resp, err := f.get(ctx, pageURL+fullViewQuery, "text/html")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	return doc, nil
}

// DownloadFile fetches the attachment bitstream at fileURL. Any
// transport error or non-success status is returned as an error; a
// discovered attachment that cannot be resolved aborts ingestion.
func (f *Fetcher) DownloadFile(ctx context.Context, fileURL string) ([]byte, error) {
	resp, err := f.get(ctx, fileURL, "application/octet-stream")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileURL, err)
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, url, accept string) (*http.Response, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", accept)

	resp, err := httputil.DoWithRetry(ctx, f.client, req, f.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("HTTP request to %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		drainClose(resp)
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return resp, nil
}

func drainClose(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
