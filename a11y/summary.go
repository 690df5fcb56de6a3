package a11y

// Summary counts passed and failed results.
type Summary struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Summarize partitions r on Passed. An empty report yields zero counts.
func Summarize(r Report) Summary {
	var s Summary
	for _, res := range r {
		if res.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// Total returns Passed + Failed.
func (s Summary) Total() int {
	return s.Passed + s.Failed
}

// PassRate returns the passed share in percent, 0 for an empty report.
func (s Summary) PassRate() float64 {
	if s.Total() == 0 {
		return 0
	}
	return 100 * float64(s.Passed) / float64(s.Total())
}
