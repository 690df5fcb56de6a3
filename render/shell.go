package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// mountPoints are element ids SPA frameworks render into.
var mountPoints = map[string]bool{
	"root":   true,
	"app":    true,
	"__next": true,
	"__nuxt": true,
}

// IsSufficient reports whether a fetched document carries enough visible
// content to be audited without running its scripts. size is the raw body
// length in bytes.
//
// A page is a shell when it is tiny, when visible text is under 10% of the
// body or under 200 characters, when it has an empty framework mount point,
// or when a <noscript> asks for JavaScript.
func IsSufficient(doc *html.Node, size int) bool {
	if doc == nil || size < 256 {
		return false
	}

	var text int
	shell := false
	var walk func(n *html.Node, hidden bool)
	walk = func(n *html.Node, hidden bool) {
		switch n.Type {
		case html.TextNode:
			if !hidden {
				text += countVisible(n.Data)
			}
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Template:
				hidden = true
			case atom.Noscript:
				if strings.Contains(strings.ToLower(textOf(n)), "javascript") {
					shell = true
				}
				hidden = true
			case atom.Div:
				if mountPoints[attr(n, "id")] && n.FirstChild == nil {
					shell = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, hidden)
		}
	}
	walk(doc, false)

	if shell || text < 200 {
		return false
	}
	return float64(text)/float64(size) >= 0.10
}

func countVisible(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			n++
		}
	}
	return n
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
