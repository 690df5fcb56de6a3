package report

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/hazyhaar/a11ycheck/a11y"
)

func sampleReport() a11y.Report {
	return a11y.Report{
		{Rule: a11y.RuleHTMLLang, Passed: false, Clause: "2.4.2 Page Titled", Message: "lang attribute missing"},
		{Rule: a11y.RuleLandmarks, Passed: true, Clause: "2.4.6 Headings and Labels", Message: "found: [banner, main]"},
		{Rule: a11y.RuleImgAlt, Passed: false, Clause: "1.1.1 תוכן לא טקסטואלי", Message: `3 "images" without alt`},
		{Rule: "custom", Passed: true, Clause: "", Message: "line one\nline two"},
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	in := sampleReport()
	data, err := FormatCSV(in, language.English)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != len(in)+1 {
		t.Fatalf("got %d rows, want %d", len(rows), len(in)+1)
	}
	if !reflect.DeepEqual(rows[0], []string{"status", "clause", "message"}) {
		t.Errorf("header = %v", rows[0])
	}
	for i, res := range in {
		want := []string{res.Status(), res.Clause, res.Message}
		if !reflect.DeepEqual(rows[i+1], want) {
			t.Errorf("row %d = %q, want %q", i+1, rows[i+1], want)
		}
	}
}

func TestCSV_Quoting(t *testing.T) {
	data, err := FormatCSV(sampleReport(), language.English)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"found: [banner, main]"`) {
		t.Error("field with separator must be quoted")
	}
	if !strings.Contains(s, `"3 ""images"" without alt"`) {
		t.Error("quotes must be doubled inside a quoted field")
	}
}

func TestCSV_HebrewHeader(t *testing.T) {
	data, err := FormatCSV(nil, language.Hebrew)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "סטטוס,תקן,הערה" {
		t.Errorf("header = %q", got)
	}
	if h := CSVHeader(language.French); h[0] != "status" {
		t.Errorf("fallback header = %v", h)
	}
}
