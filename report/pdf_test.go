package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hazyhaar/a11ycheck/a11y"
)

func TestFormatPDF_Header(t *testing.T) {
	data, err := FormatPDF(sampleReport(), "https://example.com")
	if err != nil {
		t.Fatalf("FormatPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("missing PDF header: %q", data[:min(len(data), 16)])
	}
}

func TestFormatPDF_ReadBack(t *testing.T) {
	// WHAT: a long report is written, then decoded with pdfcpu.
	// WHY: the artifact itself must paginate and keep text above the margin.
	g := Letter()
	data, err := FormatPDF(longReport(150), "https://example.com/שלום")
	if err != nil {
		t.Fatalf("FormatPDF: %v", err)
	}
	info, err := InspectPDF(data)
	if err != nil {
		t.Fatalf("InspectPDF: %v", err)
	}
	want := len(Layout(longReport(150), "x", a11y.PrintLabels(), g))
	if info.PageCount != want || info.PageCount < 2 {
		t.Fatalf("page count = %d, want %d (>1)", info.PageCount, want)
	}
	if len(info.Pages[0]) == 0 || !strings.HasPrefix(info.Pages[0][0].Text, TitlePrefix+"https://example.com/") {
		t.Fatalf("first line = %+v", info.Pages[0])
	}
	if first := info.Pages[0][0]; first.X != g.Margin || first.Y != g.Height-g.Margin {
		t.Errorf("title at (%v, %v), want (%v, %v)", first.X, first.Y, g.Margin, g.Height-g.Margin)
	}
	if !strings.HasSuffix(info.Pages[0][0].Text, "shlvm") {
		t.Errorf("title not transliterated: %q", info.Pages[0][0].Text)
	}
	lines := 0
	for i, p := range info.Pages {
		for _, l := range p {
			if l.Y < g.Margin {
				t.Errorf("page %d: %q at y=%v below margin", i+1, l.Text, l.Y)
			}
			if l.Size != g.TitleSize && l.Size != g.BodySize {
				t.Errorf("page %d: unexpected font size %v", i+1, l.Size)
			}
		}
		lines += len(p)
	}
	if lines != 151 {
		t.Errorf("decoded %d lines, want 151", lines)
	}
}

func TestRenderPDF_PlacesLinesAtLayoutPositions(t *testing.T) {
	g := Letter()
	pages := []Page{
		{Lines: []Line{
			{X: 40, Y: 752, Size: 14, Text: "Title"},
			{X: 40, Y: 700, Size: 12, Text: `a (b) \c`},
		}},
		{Lines: []Line{{X: 40, Y: 752, Size: 12, Text: "second page"}}},
	}
	data, err := RenderPDF(pages, g, "t")
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	info, err := InspectPDF(data)
	if err != nil {
		t.Fatalf("InspectPDF: %v", err)
	}
	if info.PageCount != 2 {
		t.Fatalf("page count = %d, want 2", info.PageCount)
	}
	for i, want := range pages {
		got := info.Pages[i]
		if len(got) != len(want.Lines) {
			t.Fatalf("page %d: %d lines, want %d: %+v", i+1, len(got), len(want.Lines), got)
		}
		for j, w := range want.Lines {
			if got[j] != w {
				t.Errorf("page %d line %d = %+v, want %+v", i+1, j, got[j], w)
			}
		}
	}
}

func TestParseTextRuns(t *testing.T) {
	stream := "q BT /F0 12.00 Tf ET 1.00000 0.00000 -0.00000 1.00000 40.00000 697.00000 cm " +
		"BT 0 Tw 0.00 0.00 0.00 RG 0.00 0.00 0.00 rg 0.00 3.00 Td 0 Tr (a \\(b\\) 1 2 Td) Tj ET Q " +
		"q BT /F0 14.00 Tf ET 1.00000 0.00000 -0.00000 1.00000 40.00000 681.00000 cm " +
		"BT 0 Tw 0.00 0.00 0.00 RG 0.00 0.00 0.00 rg 0.00 3.00 Td 0 Tr (oct\\101) Tj ET Q"
	got := parseTextRuns([]byte(stream))
	want := []Line{
		{X: 40, Y: 700, Size: 12, Text: "a (b) 1 2 Td"},
		{X: 40, Y: 684, Size: 14, Text: "octA"},
	}
	if len(got) != len(want) {
		t.Fatalf("parseTextRuns = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("run %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
