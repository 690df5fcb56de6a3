// CLAUDE:SUMMARY Result, Report and Summary types produced by one accessibility audit run.
package a11y

// NetworkRuleID identifies the sentinel result emitted when the document
// could not be acquired.
const NetworkRuleID = "network"

// Result is the outcome of one rule against one document.
type Result struct {
	Rule    string `json:"rule"`
	Passed  bool   `json:"passed"`
	Clause  string `json:"clause,omitempty"`
	Message string `json:"message"`
}

// Status returns "PASS" or "FAIL".
func (r Result) Status() string {
	if r.Passed {
		return "PASS"
	}
	return "FAIL"
}

// Report is the ordered list of results of one audit. A complete report holds
// one result per catalogue rule in catalogue order; a failed acquisition
// yields a single network result instead.
type Report []Result

// Failed reports whether the report is the acquisition-failure sentinel.
func (r Report) Failed() bool {
	return len(r) == 1 && r[0].Rule == NetworkRuleID
}

// Find returns the result for ruleID.
func (r Report) Find(ruleID string) (Result, bool) {
	for _, res := range r {
		if res.Rule == ruleID {
			return res, true
		}
	}
	return Result{}, false
}
