// CLAUDE:SUMMARY Human-readable terminal rendering of a report with colored PASS/FAIL markers and a summary line.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/hazyhaar/a11ycheck/a11y"
)

// Console writes reports for a terminal. Colors follow fatih/color's
// detection and are dropped when the output is not a TTY.
type Console struct {
	pass *color.Color
	fail *color.Color
	dim  *color.Color
}

// NewConsole creates a Console.
func NewConsole() *Console {
	return &Console{
		pass: color.New(color.FgGreen, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
		dim:  color.New(color.Faint),
	}
}

// Write prints one line per result followed by the summary.
func (c *Console) Write(w io.Writer, subject string, r a11y.Report) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", subject); err != nil {
		return err
	}
	for _, res := range r {
		marker := c.pass.Sprint("PASS")
		if !res.Passed {
			marker = c.fail.Sprint("FAIL")
		}
		clause := res.Clause
		if clause == "" {
			clause = res.Rule
		}
		if _, err := fmt.Fprintf(w, "[%s] %-28s %s %s\n", marker, res.Rule, clause, c.dim.Sprint("- "+res.Message)); err != nil {
			return err
		}
	}
	s := a11y.Summarize(r)
	_, err := fmt.Fprintf(w, "\npassed: %d  failed: %d  (%.1f%%)\n", s.Passed, s.Failed, s.PassRate())
	return err
}
