// CLAUDE:SUMMARY Reads a generated PDF back through pdfcpu: page count and positioned text runs per page.
package report

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDFInfo describes a decoded PDF.
type PDFInfo struct {
	PageCount int
	Pages     [][]Line // text runs per page, in drawing order
}

// InspectPDF parses data and returns the text runs drawn on each page.
// Only the operators emitted by RenderPDF (Tf, cm, Td, Tj) are interpreted.
func InspectPDF(data []byte) (*PDFInfo, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("report: pdfcpu read: %w", err)
	}
	info := &PDFInfo{PageCount: ctx.PageCount}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			return nil, fmt.Errorf("report: page %d content: %w", pageNr, err)
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("report: page %d read: %w", pageNr, err)
		}
		info.Pages = append(info.Pages, parseTextRuns(content))
	}
	return info, nil
}

const pdfNum = `(-?[0-9]*\.?[0-9]+)`

// textOps matches, in stream order, the operators RenderPDF emits around
// each line: font size (Tf), the line's transform (cm), the offset inside
// it (Td) and the string (Tj).
var textOps = regexp.MustCompile(
	`/\S+\s+` + pdfNum + `\s+Tf` +
		`|` + strings.Repeat(pdfNum+`\s+`, 6) + `cm` +
		`|` + pdfNum + `\s+` + pdfNum + `\s+Td` +
		`|\(((?:\\.|[^\\)])*)\)\s*Tj`)

// parseTextRuns walks a content stream and pairs every Tj with the last
// font size seen and its absolute position (cm translation plus Td).
func parseTextRuns(content []byte) []Line {
	var (
		lines            []Line
		size             float64
		originX, originY float64
		tdX, tdY         float64
	)
	num := func(b []byte) float64 {
		f, _ := strconv.ParseFloat(string(b), 64)
		return f
	}
	for _, m := range textOps.FindAllSubmatchIndex(content, -1) {
		group := func(n int) []byte {
			if m[2*n] < 0 {
				return nil
			}
			return content[m[2*n]:m[2*n+1]]
		}
		switch {
		case group(1) != nil:
			size = num(group(1))
		case group(2) != nil:
			originX, originY = num(group(6)), num(group(7))
			tdX, tdY = 0, 0
		case group(8) != nil:
			tdX, tdY = num(group(8)), num(group(9))
		default:
			text, err := types.Unescape(string(group(10)))
			if err != nil {
				text = group(10)
			}
			lines = append(lines, Line{
				X:    round2(originX + tdX),
				Y:    round2(originY + tdY),
				Size: size,
				Text: string(text),
			})
		}
	}
	return lines
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
