// CLAUDE:SUMMARY CLI entry point for a11ycheck: one-shot accessibility audits, rule/clause listings, audit history.
// Command a11ycheck audits web pages against SI 5568 / WCAG rules.
//
// Usage:
//
//	a11ycheck audit https://example.com --csv report.csv --pdf report.pdf
//	a11ycheck audit --file index.html --lang he
//	a11ycheck rules
//	a11ycheck clauses contrast
//	a11ycheck history --history audits.db
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/a11ycheck/auditor"
)

type globalFlags struct {
	configPath  string
	logLevel    string
	lang        string
	historyPath string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "a11ycheck",
		Short: "Audit web pages against SI 5568 / WCAG accessibility rules",
		Long: `a11ycheck runs a fixed catalogue of accessibility rules against a web page
or a local HTML file and reports PASS/FAIL per rule, mapped to SI 5568 clauses.

Reports are printed to the terminal and can be exported as CSV and PDF.`,
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "path to a11ycheck.yaml config file")
	pf.StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.StringVar(&g.lang, "lang", "", "report language: en or he (overrides config)")
	pf.StringVar(&g.historyPath, "history", "", "SQLite audit history path (overrides config)")

	root.AddCommand(
		newAuditCmd(g),
		newRulesCmd(g),
		newClausesCmd(g),
		newHistoryCmd(g),
	)
	return root
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// resolveConfig loads the config file when given and applies flag overrides.
func resolveConfig(g *globalFlags) (*auditor.Config, error) {
	cfg := &auditor.Config{}
	if g.configPath != "" {
		c, err := auditor.LoadConfigFile(g.configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if g.lang != "" {
		cfg.Language = g.lang
	}
	if g.historyPath != "" {
		cfg.History.DBPath = g.historyPath
	}
	return cfg, nil
}
