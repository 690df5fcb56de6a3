// CLAUDE:SUMMARY Static, ordered registry of accessibility rules with clause mapping and print labels.
package a11y

import (
	"github.com/PuerkitoBio/goquery"
)

// Rule identifiers. They are part of the published report contract.
const (
	RuleHTMLLang               = "html_lang"
	RuleTitleTag               = "title_tag"
	RuleMetaViewport           = "meta_viewport"
	RuleSkipLink               = "skip_link"
	RuleLandmarks              = "landmarks"
	RuleEmptyLinks             = "empty_links"
	RuleHeaderSequence         = "header_sequence"
	RuleImgAlt                 = "img_alt"
	RuleVideoCaptions          = "video_captions"
	RuleContrastRatio          = "contrast_ratio"
	RuleTextResize             = "text_resize"
	RuleFormLabels             = "form_labels"
	RuleAriaLabels             = "aria_labels"
	RuleAccessibilityStatement = "accessibility_statement"
)

// Outcome is what a check decides. Message is an English format string used
// as the localization key; Args fill its verbs.
type Outcome struct {
	Passed  bool
	Message string
	Args    []any
}

func pass(msg string, args ...any) Outcome { return Outcome{Passed: true, Message: msg, Args: args} }
func fail(msg string, args ...any) Outcome { return Outcome{Passed: false, Message: msg, Args: args} }

// Env carries the per-engine settings a check may read.
type Env struct {
	StatementTerms []string
}

// Check evaluates one rule. Checks never modify the document and must be
// total over any parsed tree.
type Check func(doc *goquery.Document, env Env) Outcome

// Rule is one catalogue entry.
type Rule struct {
	ID         string
	ClauseKey  string
	PrintLabel string // ASCII label used by the Latin-only PDF report
	Check      Check
}

// catalogue order is the execution and display order.
var catalogue = []Rule{
	{RuleHTMLLang, "page_titled", "2.4.2 Document Language", checkHTMLLang},
	{RuleTitleTag, "page_titled", "2.4.2 Page Title", checkTitle},
	{RuleMetaViewport, "reflow", "1.4.10 Meta Viewport", checkMetaViewport},
	{RuleSkipLink, "bypass_blocks", "2.4.1 Skip Link", checkSkipLink},
	{RuleLandmarks, "headings_labels", "2.4.1 ARIA Landmarks", checkLandmarks},
	{RuleEmptyLinks, "link_purpose", "2.4.4 Link Purpose", checkEmptyLinks},
	{RuleHeaderSequence, "headings_labels", "2.4.6 Headings and Labels", checkHeaderSequence},
	{RuleImgAlt, "non_text_content", "1.1.1 Non-text Content", checkImgAlt},
	{RuleVideoCaptions, "captions_prerecorded", "1.2.2 Video Captions", checkVideoCaptions},
	{RuleContrastRatio, "contrast_ratio", "1.4.3 Contrast (Minimum)", checkContrast},
	{RuleTextResize, "resize_text", "1.4.4 Resize Text", checkTextResize},
	{RuleFormLabels, "info_relationships", "1.3.1 Form Labels", checkFormLabels},
	{RuleAriaLabels, "name_role_value", "ARIA Labels", checkAriaLabels},
	{RuleAccessibilityStatement, "parsing", "4.1.1 Parsing", checkAccessibilityStatement},
}

// Catalogue returns a copy of the rule registry in canonical order.
func Catalogue() []Rule {
	out := make([]Rule, len(catalogue))
	copy(out, catalogue)
	return out
}

// RuleIDs returns the rule identifiers in canonical order.
func RuleIDs() []string {
	ids := make([]string, len(catalogue))
	for i, r := range catalogue {
		ids[i] = r.ID
	}
	return ids
}

// Labels is an immutable rule ID to print label table.
type Labels struct {
	m map[string]string
}

// Lookup returns the label for ruleID, or ruleID itself when unmapped.
func (l Labels) Lookup(ruleID string) string {
	if s, ok := l.m[ruleID]; ok {
		return s
	}
	return ruleID
}

var printLabels = func() Labels {
	m := map[string]string{NetworkRuleID: "Network Error"}
	for _, r := range catalogue {
		m[r.ID] = r.PrintLabel
	}
	return Labels{m: m}
}()

// PrintLabels returns the ASCII rule label table used by printable reports.
func PrintLabels() Labels {
	return printLabels
}
