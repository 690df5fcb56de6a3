// CLAUDE:SUMMARY Tabular CSV export of an audit report: localized header, one row per result, RFC 4180 quoting.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/language"

	"github.com/hazyhaar/a11ycheck/a11y"
)

var csvHeaders = map[language.Tag][]string{
	language.English: {"status", "clause", "message"},
	language.Hebrew:  {"סטטוס", "תקן", "הערה"},
}

// CSVHeader returns the column header for lang, English when unsupported.
func CSVHeader(lang language.Tag) []string {
	if h, ok := csvHeaders[lang]; ok {
		return h
	}
	return csvHeaders[language.English]
}

// WriteCSV writes the header row then one (status, clause, message) row per
// result, in report order.
func WriteCSV(w io.Writer, r a11y.Report, lang language.Tag) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader(lang)); err != nil {
		return fmt.Errorf("report: csv header: %w", err)
	}
	for _, res := range r {
		if err := cw.Write([]string{res.Status(), res.Clause, res.Message}); err != nil {
			return fmt.Errorf("report: csv row %s: %w", res.Rule, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: csv flush: %w", err)
	}
	return nil
}

// FormatCSV renders r as UTF-8 CSV bytes.
func FormatCSV(r a11y.Report, lang language.Tag) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, r, lang); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
