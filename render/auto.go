package render

import (
	"context"
	"log/slog"

	"golang.org/x/net/html"
)

// Auto fetches over HTTP first and escalates to a browser only when the
// fetched markup looks like a JavaScript shell.
type Auto struct {
	fetcher *Fetcher
	browser Renderer
	logger  *slog.Logger
}

// NewAuto combines a fetcher and a browser renderer.
func NewAuto(f *Fetcher, browser Renderer, logger *slog.Logger) *Auto {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auto{fetcher: f, browser: browser, logger: logger}
}

// Render implements Renderer.
func (a *Auto) Render(ctx context.Context, target string) (*html.Node, error) {
	p, err := a.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	if p.Sufficient || a.browser == nil {
		return p.Doc, nil
	}

	a.logger.Info("render: escalating to browser", "url", target)
	doc, err := a.browser.Render(ctx, target)
	if err != nil {
		// The static markup is still auditable.
		a.logger.Warn("render: browser failed, using fetched markup", "url", target, "error", err)
		return p.Doc, nil
	}
	return doc, nil
}

// Close releases the browser.
func (a *Auto) Close() error {
	return Close(a.browser)
}
