// CLAUDE:SUMMARY Rule executor: runs the catalogue in order over a parsed tree, isolating rule panics; network sentinel on acquisition failure.
// Package a11y audits a parsed HTML document against a fixed catalogue of
// SI 5568 / WCAG accessibility rules.
//
// Usage:
//
//	eng := a11y.NewEngine(a11y.Config{Language: a11y.ParseLang("he")})
//	report := eng.Run(doc)
//	sum := a11y.Summarize(report)
package a11y

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultStatementTerms are the words whose presence marks an accessibility
// statement.
var DefaultStatementTerms = []string{"נגישות", "accessibility"}

// Config configures an Engine.
type Config struct {
	// Language of clause labels and messages. Default: English.
	Language language.Tag

	// StatementTerms are matched case-insensitively against every text node
	// by the accessibility_statement rule. Default: DefaultStatementTerms.
	StatementTerms []string

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Language == language.Und {
		c.Language = language.English
	}
	if len(c.StatementTerms) == 0 {
		c.StatementTerms = DefaultStatementTerms
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Source acquires a document. It is the boundary to the renderer: any error
// it returns becomes the network sentinel result.
type Source func(ctx context.Context) (*html.Node, error)

// Engine runs the rule catalogue. It holds no per-audit state and may be
// shared.
type Engine struct {
	cfg    Config
	rules  []Rule
	logger *slog.Logger
}

// NewEngine creates an Engine over the static catalogue.
func NewEngine(cfg Config) *Engine {
	cfg.defaults()
	return &Engine{
		cfg:    cfg,
		rules:  catalogue,
		logger: cfg.Logger,
	}
}

// Language returns the report language.
func (e *Engine) Language() language.Tag {
	return e.cfg.Language
}

// RunSource acquires the document once and audits it. When acquisition
// fails no rule is evaluated.
func (e *Engine) RunSource(ctx context.Context, src Source) Report {
	doc, err := src(ctx)
	if err == nil && doc == nil {
		err = fmt.Errorf("a11y: source returned no document")
	}
	if err != nil {
		e.logger.Warn("a11y: acquisition failed", "error", err)
		return e.NetworkFailure(err)
	}
	return e.Run(doc)
}

// Run evaluates every catalogue rule against doc, in catalogue order.
func (e *Engine) Run(doc *html.Node) Report {
	if doc == nil {
		doc = &html.Node{Type: html.DocumentNode}
	}
	gq := goquery.NewDocumentFromNode(doc)
	p := newPrinter(e.cfg.Language)
	env := Env{StatementTerms: e.cfg.StatementTerms}

	report := make(Report, 0, len(e.rules))
	for _, r := range e.rules {
		res := e.evaluate(r, gq, env, p)
		if !res.Passed {
			e.logger.Debug("a11y: rule failed", "rule", res.Rule, "message", res.Message)
		}
		report = append(report, res)
	}
	return report
}

// evaluate runs one rule. A panicking rule yields a failing result in its
// own slot so the report keeps one entry per rule.
func (e *Engine) evaluate(r Rule, doc *goquery.Document, env Env, p *message.Printer) (res Result) {
	res = Result{Rule: r.ID, Clause: e.clauseLabel(r.ClauseKey)}
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("a11y: rule panicked", "rule", r.ID, "panic", rec)
			res.Passed = false
			res.Message = p.Sprintf(msgRuleError, rec)
		}
	}()
	out := r.Check(doc, env)
	res.Passed = out.Passed
	res.Message = p.Sprintf(out.Message, plainCounts(out.Args)...)
	return res
}

// count prints as bare digits. The printer would otherwise group
// thousands per locale ("1,200"), which makes CSV cells locale dependent.
type count int

func (c count) Format(f fmt.State, _ rune) {
	io.WriteString(f, strconv.Itoa(int(c)))
}

func plainCounts(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if n, ok := a.(int); ok {
			a = count(n)
		}
		out[i] = a
	}
	return out
}

func (e *Engine) clauseLabel(key string) string {
	c, ok := LookupClause(key)
	if !ok {
		return ""
	}
	return c.Label(e.cfg.Language)
}

// NetworkFailure builds the single-result report used when the document
// could not be acquired.
func (e *Engine) NetworkFailure(err error) Report {
	p := newPrinter(e.cfg.Language)
	return Report{{
		Rule:    NetworkRuleID,
		Passed:  false,
		Clause:  p.Sprintf(msgNetworkClause),
		Message: err.Error(),
	}}
}
