package a11y

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// violations counts the elements of sel that do not satisfy ok. An empty
// selection has no violations, so a rule built on it passes vacuously.
func violations(sel *goquery.Selection, ok func(*goquery.Selection) bool) int {
	n := 0
	sel.Each(func(_ int, s *goquery.Selection) {
		if !ok(s) {
			n++
		}
	})
	return n
}

// hasText reports whether s contains non-whitespace text.
func hasText(s *goquery.Selection) bool {
	return strings.TrimSpace(s.Text()) != ""
}

// nonEmptyAttr reports whether attribute name is present with a non-empty value.
func nonEmptyAttr(s *goquery.Selection, name string) bool {
	v, ok := s.Attr(name)
	return ok && v != ""
}

// walkElements visits every element below n in document order.
func walkElements(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			fn(c)
		}
		walkElements(c, fn)
	}
}

// anyText reports whether some text node below n satisfies fn.
func anyText(n *html.Node, fn func(string) bool) bool {
	if n.Type == html.TextNode && fn(n.Data) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if anyText(c, fn) {
			return true
		}
	}
	return false
}

// headingLevel returns 1-6 for h1..h6 and 0 for any other element.
func headingLevel(n *html.Node) int {
	if len(n.Data) != 2 || n.Data[0] != 'h' {
		return 0
	}
	if l := int(n.Data[1] - '0'); l >= 1 && l <= 6 {
		return l
	}
	return 0
}
