// CLAUDE:SUMMARY HTTP-only acquisition: one GET, size cap, charset decoding, parsed into an HTML tree.
package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Page is the outcome of an HTTP fetch.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
	Doc        *html.Node

	// Sufficient is false when the markup looks like a JavaScript shell
	// that only a browser can fill in.
	Sufficient bool
}

// Fetcher acquires documents with a single HTTP GET. No JavaScript runs.
type Fetcher struct {
	client       *http.Client
	ua           string
	maxBody      int64
	allowPrivate bool
	logger       *slog.Logger
}

// NewFetcher creates a Fetcher from cfg.
func NewFetcher(cfg Config) *Fetcher {
	cfg.defaults()
	return &Fetcher{
		client:       &http.Client{Timeout: cfg.Timeout},
		ua:           cfg.UserAgent,
		maxBody:      cfg.MaxBodySize,
		allowPrivate: cfg.AllowPrivate,
		logger:       cfg.Logger,
	}
}

// Fetch GETs target and parses the body. Non-2xx/3xx statuses are errors.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*Page, error) {
	if err := ValidateURL(target, f.allowPrivate); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("render: new request: %w", err)
	}
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "he,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render: get %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("render: get %s: status %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("render: read body: %w", err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, target, f.maxBody)
	}

	r, err := charset.NewReader(bytes.NewReader(body), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("render: decode charset: %w", err)
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("render: parse %s: %w", target, err)
	}

	p := &Page{
		URL:        target,
		StatusCode: resp.StatusCode,
		Body:       body,
		Doc:        doc,
		Sufficient: IsSufficient(doc, len(body)),
	}

	f.logger.Debug("render: fetched",
		"url", target, "status", resp.StatusCode,
		"size", len(body), "sufficient", p.Sufficient)

	return p, nil
}

// Render implements Renderer.
func (f *Fetcher) Render(ctx context.Context, target string) (*html.Node, error) {
	p, err := f.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	return p.Doc, nil
}
