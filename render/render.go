// CLAUDE:SUMMARY Document acquisition: Renderer interface, config, and mode selection (http, browser, auto).
// Package render turns a URL, a file or a markup string into a parsed HTML
// tree for the audit engine.
//
// Three acquisition modes mirror the cost ladder of a crawler:
//
//	http    a single GET, no JavaScript (covers static sites)
//	browser headless Chrome via Rod, JavaScript executed
//	auto    GET first, browser only when the page is a JS shell
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/net/html"
)

// Acquisition modes.
const (
	ModeAuto    = "auto"
	ModeHTTP    = "http"
	ModeBrowser = "browser"
)

// ErrTooLarge is returned when a document exceeds the configured size cap.
var ErrTooLarge = errors.New("render: document too large")

// Renderer acquires and parses the document at target.
type Renderer interface {
	Render(ctx context.Context, target string) (*html.Node, error)
}

// Config configures acquisition.
type Config struct {
	Mode        string        `yaml:"mode"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	MaxBodySize int64         `yaml:"max_body"`

	// AllowPrivate permits loopback and private-network targets.
	AllowPrivate bool `yaml:"allow_private"`

	Browser BrowserConfig `yaml:"browser"`

	Logger *slog.Logger `yaml:"-"`
}

// BrowserConfig controls the Chrome instance used in browser mode.
type BrowserConfig struct {
	// Remote is the DevTools WebSocket URL of an existing Chrome. Empty
	// launches a local headless Chrome.
	Remote string `yaml:"remote"`

	// ResourceBlocking lists resource types not to load (images, fonts,
	// media, stylesheets). Audits only need the DOM.
	ResourceBlocking []string `yaml:"resource_blocking"`

	// Stealth applies go-rod/stealth evasions to every page.
	Stealth bool `yaml:"stealth"`

	blocked map[proto.NetworkResourceType]bool
}

func (c *Config) defaults() {
	if c.Mode == "" {
		c.Mode = ModeAuto
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (compatible; a11ycheck/1.0)"
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = 10 << 20
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	c.Browser.blocked = resourceTypes(c.Browser.ResourceBlocking, c.Logger)
}

// Closer is implemented by renderers that hold a browser.
type Closer interface {
	Close() error
}

// New returns the Renderer for cfg.Mode. Call Close on the result when it
// implements Closer.
func New(cfg Config) (Renderer, error) {
	cfg.defaults()
	switch cfg.Mode {
	case ModeHTTP:
		return NewFetcher(cfg), nil
	case ModeBrowser:
		return NewBrowser(cfg), nil
	case ModeAuto:
		return NewAuto(NewFetcher(cfg), NewBrowser(cfg), cfg.Logger), nil
	default:
		return nil, fmt.Errorf("render: unknown mode %q", cfg.Mode)
	}
}

// Close releases r if it holds resources.
func Close(r Renderer) error {
	if c, ok := r.(Closer); ok {
		return c.Close()
	}
	return nil
}
