package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// ParseMarkup parses an HTML string. The HTML5 parser recovers from any
// malformed input, so errors only come from the reader.
func ParseMarkup(markup string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("render: parse: %w", err)
	}
	return doc, nil
}

// ParseFile reads and parses a local HTML file of at most maxSize bytes
// (0 means unlimited).
func ParseFile(path string, maxSize int64) (*html.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxSize > 0 {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("render: stat %s: %w", path, err)
		}
		if info.Size() > maxSize {
			return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrTooLarge, path, info.Size(), maxSize)
		}
		r = io.LimitReader(f, maxSize)
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("render: parse %s: %w", path, err)
	}
	return doc, nil
}
