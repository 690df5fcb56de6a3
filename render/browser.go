// CLAUDE:SUMMARY Headless Chrome acquisition via Rod: lazy launch, stealth pages, resource blocking, outerHTML capture.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"golang.org/x/net/html"
)

// Browser renders pages in Chrome so client-side scripts run before the
// audit. Chrome is launched on first use and shared across renders.
type Browser struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// NewBrowser creates a Browser. Chrome is not started until Render.
func NewBrowser(cfg Config) *Browser {
	cfg.defaults()
	return &Browser{cfg: cfg, logger: cfg.Logger}
}

// Render navigates to target, waits for load and parses the live DOM.
func (b *Browser) Render(ctx context.Context, target string) (*html.Node, error) {
	if err := ValidateURL(target, b.cfg.AllowPrivate); err != nil {
		return nil, err
	}
	br, err := b.ensure()
	if err != nil {
		return nil, err
	}

	var page *rod.Page
	if b.cfg.Browser.Stealth {
		page, err = stealth.Page(br)
	} else {
		page, err = br.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("render: create tab: %w", err)
	}
	defer page.Close()

	if len(b.cfg.Browser.blocked) > 0 {
		router := blockResources(page, b.cfg.Browser.blocked)
		defer router.Stop()
	}

	navCtx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(target); err != nil {
		return nil, fmt.Errorf("render: navigate %s: %w", target, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		b.logger.Warn("render: wait load", "url", target, "error", err)
	}

	res, err := page.Context(navCtx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return nil, fmt.Errorf("render: get DOM: %w", err)
	}
	markup := res.Value.Str()
	if int64(len(markup)) > b.cfg.MaxBodySize {
		return nil, fmt.Errorf("%w: rendered DOM of %s exceeds %d bytes", ErrTooLarge, target, b.cfg.MaxBodySize)
	}

	b.logger.Debug("render: rendered", "url", target, "size", len(markup))
	return ParseMarkup(markup)
}

// Close shuts Chrome down.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true

	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.lnch != nil {
		b.lnch.Kill()
		b.lnch = nil
	}
	return err
}

func (b *Browser) ensure() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("render: browser is closed")
	}
	if b.browser != nil {
		return b.browser, nil
	}

	wsURL := b.cfg.Browser.Remote
	if wsURL != "" {
		b.logger.Info("render: connecting to remote chrome", "url", wsURL)
	} else {
		l := launcher.New().
			Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("render: launch chrome: %w", err)
		}
		wsURL = u
		b.lnch = l
		b.logger.Info("render: launched local chrome", "url", wsURL)
	}

	br := rod.New().ControlURL(wsURL)
	if err := br.Connect(); err != nil {
		if b.lnch != nil {
			b.lnch.Kill()
			b.lnch = nil
		}
		return nil, fmt.Errorf("render: connect chrome: %w", err)
	}
	b.browser = br
	return br, nil
}

// blockResources fails requests whose CDP type is in block.
func blockResources(page *rod.Page, block map[proto.NetworkResourceType]bool) *rod.HijackRouter {
	router := page.HijackRequests()
	router.MustAdd("*", func(h *rod.Hijack) {
		if block[h.Request.Type()] {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		h.ContinueRequest(&proto.FetchContinueRequest{})
	})
	go router.Run()
	return router
}

// Plural names accepted in resource_blocking besides the CDP type names.
var resourceAliases = map[string]proto.NetworkResourceType{
	"images":      proto.NetworkResourceTypeImage,
	"fonts":       proto.NetworkResourceTypeFont,
	"stylesheets": proto.NetworkResourceTypeStylesheet,
	"scripts":     proto.NetworkResourceTypeScript,
	"media":       proto.NetworkResourceTypeMedia,
}

var cdpResourceTypes = func() map[string]proto.NetworkResourceType {
	m := make(map[string]proto.NetworkResourceType)
	for _, t := range []proto.NetworkResourceType{
		proto.NetworkResourceTypeDocument,
		proto.NetworkResourceTypeStylesheet,
		proto.NetworkResourceTypeImage,
		proto.NetworkResourceTypeMedia,
		proto.NetworkResourceTypeFont,
		proto.NetworkResourceTypeScript,
		proto.NetworkResourceTypeTextTrack,
		proto.NetworkResourceTypeXHR,
		proto.NetworkResourceTypeFetch,
		proto.NetworkResourceTypePrefetch,
		proto.NetworkResourceTypeEventSource,
		proto.NetworkResourceTypeWebSocket,
		proto.NetworkResourceTypeManifest,
		proto.NetworkResourceTypePing,
		proto.NetworkResourceTypeOther,
	} {
		m[strings.ToLower(string(t))] = t
	}
	return m
}()

// resourceTypes resolves resource_blocking names to CDP types. Names are
// case-insensitive; unknown ones are logged and ignored.
func resourceTypes(names []string, logger *slog.Logger) map[proto.NetworkResourceType]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[proto.NetworkResourceType]bool, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		t, ok := resourceAliases[key]
		if !ok {
			t, ok = cdpResourceTypes[key]
		}
		if !ok {
			logger.Warn("render: unknown resource type", "name", n)
			continue
		}
		set[t] = true
	}
	return set
}
