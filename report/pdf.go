// CLAUDE:SUMMARY Paginated PDF report writer (Helvetica, US Letter) built page by page with pdfcpu.
package report

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/create"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/hazyhaar/a11ycheck/a11y"
)

func init() {
	// Keep pdfcpu away from the user's config directory.
	model.ConfigPath = "disable"
}

// TitlePrefix starts the first line of every printable report.
const TitlePrefix = "Accessibility Report SI 5568 for: "

// FormatPDF lays out r on US Letter pages under a title naming subject and
// returns the encoded document.
func FormatPDF(r a11y.Report, subject string) ([]byte, error) {
	return RenderPDF(Layout(r, TitlePrefix+subject, a11y.PrintLabels(), Letter()), Letter(), subject)
}

// Every line is drawn in the standard Helvetica font.
const pdfFont = "Helvetica"

// RenderPDF builds one pdfcpu page per laid-out page and writes the
// document. Lines are placed at their Layout positions, baseline aligned.
func RenderPDF(pages []Page, g Geometry, docTitle string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.Cmd = model.CREATE
	ctx, err := pdfcpu.CreateContextWithXRefTable(conf, &types.Dim{Width: g.Width, Height: g.Height})
	if err != nil {
		return nil, fmt.Errorf("report: pdf context: %w", err)
	}

	mediaBox := types.RectForDim(g.Width, g.Height)
	fonts := model.FontMap{}
	fonts.EnsureKey(pdfFont)

	out := make([]*model.Page, 0, len(pages))
	for _, pg := range pages {
		p := model.NewPage(mediaBox, mediaBox)
		key := p.Fm.EnsureKey(pdfFont)
		for _, l := range pg.Lines {
			model.WriteMultiLine(ctx.XRefTable, p.Buf, mediaBox, nil, model.TextDescriptor{
				Text:     l.Text,
				FontName: pdfFont,
				FontKey:  key,
				FontSize: int(l.Size),
				X:        l.X,
				Y:        l.Y,
				HAlign:   types.AlignLeft,
				VAlign:   types.AlignBaseline,
				Scale:    1,
				ScaleAbs: true,
			})
		}
		out = append(out, &p)
	}
	if _, _, err := create.UpdatePageTree(ctx, out, fonts); err != nil {
		return nil, fmt.Errorf("report: pdf pages: %w", err)
	}

	info := types.NewDict()
	info.InsertString("Title", toASCII(docTitle))
	info.InsertString("Creator", "a11ycheck")
	if ctx.Info, err = ctx.IndRefForNewObject(info); err != nil {
		return nil, fmt.Errorf("report: pdf info: %w", err)
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, fmt.Errorf("report: pdf write: %w", err)
	}
	return buf.Bytes(), nil
}
