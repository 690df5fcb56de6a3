// CLAUDE:SUMMARY Page layout for the printable report: fixed-width character wrapping and cursor-driven pagination.
package report

import (
	"github.com/hazyhaar/a11ycheck/a11y"
)

// Geometry fixes the page size and text metrics, in PDF points.
type Geometry struct {
	Width      float64
	Height     float64
	Margin     float64
	LineHeight float64
	TitleSize  float64
	BodySize   float64
	TitleGap   float64 // distance from the title baseline to the first body line
	CharWidth  float64 // average glyph width used for wrapping
}

// Letter is US Letter with a 40pt margin and a 16pt line pitch.
func Letter() Geometry {
	return Geometry{
		Width:      612,
		Height:     792,
		Margin:     40,
		LineHeight: 16,
		TitleSize:  14,
		BodySize:   12,
		TitleGap:   30,
		CharWidth:  7,
	}
}

// CharsPerLine is the wrap width in characters.
func (g Geometry) CharsPerLine() int {
	n := int((g.Width - 2*g.Margin) / g.CharWidth)
	return max(n, 1)
}

// Line is one drawn text run; (X, Y) is its baseline origin.
type Line struct {
	X, Y float64
	Size float64
	Text string
}

// Page is the ordered list of lines drawn on one page.
type Page struct {
	Lines []Line
}

// ResultLine renders a result as "[PASS] <label>" with the label taken from
// labels (rule ID when unmapped).
func ResultLine(res a11y.Result, labels a11y.Labels) string {
	return "[" + res.Status() + "] " + labels.Lookup(res.Rule)
}

// Layout places the title on the first page then one line per result, split
// into fixed-width chunks. A new page starts whenever the cursor has dropped
// below the bottom margin, so no line is drawn under it.
func Layout(r a11y.Report, title string, labels a11y.Labels, g Geometry) []Page {
	pages := []Page{{Lines: []Line{{
		X: g.Margin, Y: g.Height - g.Margin, Size: g.TitleSize, Text: toASCII(title),
	}}}}
	cur := &pages[0]
	y := g.Height - g.Margin - g.TitleGap
	width := g.CharsPerLine()

	for _, res := range r {
		for _, chunk := range wrap(toASCII(ResultLine(res, labels)), width) {
			if y < g.Margin {
				pages = append(pages, Page{})
				cur = &pages[len(pages)-1]
				y = g.Height - g.Margin
			}
			cur.Lines = append(cur.Lines, Line{X: g.Margin, Y: y, Size: g.BodySize, Text: chunk})
			y -= g.LineHeight
		}
	}
	return pages
}

// wrap cuts s into chunks of at most width characters, ignoring word
// boundaries. An empty string yields a single empty chunk.
func wrap(s string, width int) []string {
	rs := []rune(s)
	if len(rs) == 0 {
		return []string{""}
	}
	chunks := make([]string, 0, (len(rs)+width-1)/width)
	for i := 0; i < len(rs); i += width {
		end := min(i+width, len(rs))
		chunks = append(chunks, string(rs[i:end]))
	}
	return chunks
}
