// CLAUDE:SUMMARY SI 5568 clause catalogue (Hebrew and English labels) with key/label search.
package a11y

import (
	"strings"

	"golang.org/x/text/language"
)

// Clause is one SI 5568 (WCAG 2.0 based) success criterion.
type Clause struct {
	Key     string `json:"key"`
	Number  string `json:"number"`
	Hebrew  string `json:"he"`
	English string `json:"en"`
}

// Label returns "<number> <title>" in the requested language. Hebrew is used
// for Hebrew tags, English for everything else.
func (c Clause) Label(lang language.Tag) string {
	title := c.English
	if isHebrew(lang) {
		title = c.Hebrew
	}
	return c.Number + " " + title
}

var clauses = []Clause{
	// Principle 1: Perceivable
	{"non_text_content", "1.1.1", "תוכן לא טקסטואלי", "Non-text Content"},
	{"captions_prerecorded", "1.2.2", "כתוביות (מוקלט מראש)", "Captions (Prerecorded)"},
	{"audio_description", "1.2.5", "תיאור בשמע (מוקלט מראש)", "Audio Description (Prerecorded)"},
	{"info_relationships", "1.3.1", "מידע וקשרים", "Info and Relationships"},
	{"meaningful_sequence", "1.3.2", "רצף משמעותי", "Meaningful Sequence"},
	{"sensory_characteristics", "1.3.3", "תכונות חושיות", "Sensory Characteristics"},
	{"use_of_color", "1.4.1", "שימוש בצבע", "Use of Color"},
	{"contrast_ratio", "1.4.3", "ניגוד (מינימום)", "Contrast (Minimum)"},
	{"resize_text", "1.4.4", "שינוי גודל טקסט", "Resize Text"},
	{"images_of_text", "1.4.5", "תמונות של טקסט", "Images of Text"},
	{"reflow", "1.4.10", "תזוזה", "Reflow"},
	{"non_text_contrast", "1.4.11", "ניגוד לא טקסטואלי", "Non-text Contrast"},
	// Principle 2: Operable
	{"keyboard", "2.1.1", "תמיכה במקלדת", "Keyboard"},
	{"bypass_blocks", "2.4.1", "עקיפת בלוקים", "Bypass Blocks"},
	{"page_titled", "2.4.2", "שם עמוד", "Page Titled"},
	{"focus_order", "2.4.3", "סדר פוקוס", "Focus Order"},
	{"link_purpose", "2.4.4", "ייעוד קישור", "Link Purpose (In Context)"},
	{"multiple_ways", "2.4.5", "דרכים מרובות", "Multiple Ways"},
	{"headings_labels", "2.4.6", "כותרות ותוויות", "Headings and Labels"},
	{"focus_visible", "2.4.7", "פוקוס נראה", "Focus Visible"},
	{"section_headings", "2.4.10", "כותרות קטעים", "Section Headings"},
	// Principle 3: Understandable
	{"language_of_page", "3.1.1", "שפת העמוד", "Language of Page"},
	{"language_of_parts", "3.1.2", "שפת חלקים", "Language of Parts"},
	{"error_identification", "3.3.1", "זיהוי שגיאות", "Error Identification"},
	{"error_suggestion", "3.3.3", "הצעת תיקון", "Error Suggestion"},
	{"error_prevention", "3.3.4", "מניעת שגיאות", "Error Prevention (Legal, Financial, Data)"},
	// Principle 4: Robust
	{"parsing", "4.1.1", "ניתוח", "Parsing"},
	{"name_role_value", "4.1.2", "שם, תפקיד, ערך", "Name, Role, Value"},
}

var clauseIndex = func() map[string]Clause {
	m := make(map[string]Clause, len(clauses))
	for _, c := range clauses {
		m[c.Key] = c
	}
	return m
}()

// Clauses returns a copy of the clause catalogue in standard order.
func Clauses() []Clause {
	out := make([]Clause, len(clauses))
	copy(out, clauses)
	return out
}

// LookupClause returns the clause registered under key.
func LookupClause(key string) (Clause, bool) {
	c, ok := clauseIndex[key]
	return c, ok
}

// SearchClauses returns the clauses whose key, number or label contains q.
// An empty query returns the whole catalogue.
func SearchClauses(q string) []Clause {
	q = strings.TrimSpace(q)
	if q == "" {
		return Clauses()
	}
	lq := strings.ToLower(q)
	var out []Clause
	for _, c := range clauses {
		if strings.Contains(c.Key, lq) ||
			strings.Contains(c.Number, q) ||
			strings.Contains(c.Hebrew, q) ||
			strings.Contains(strings.ToLower(c.English), lq) {
			out = append(out, c)
		}
	}
	return out
}
