package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/a11ycheck/a11y"
)

func newRulesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalogue in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(g)
			if err != nil {
				return err
			}
			lang := a11y.ParseLang(cfg.Language)
			bold := color.New(color.Bold)
			out := cmd.OutOrStdout()
			for i, r := range a11y.Catalogue() {
				label := r.ClauseKey
				if c, ok := a11y.LookupClause(r.ClauseKey); ok {
					label = c.Label(lang)
				}
				fmt.Fprintf(out, "%2d. %s  %s\n", i+1, bold.Sprintf("%-24s", r.ID), label)
			}
			return nil
		},
	}
}

func newClausesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clauses [query]",
		Short: "List or search SI 5568 clauses",
		Example: `  a11ycheck clauses
  a11ycheck clauses contrast
  a11ycheck clauses 2.4 --lang he`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(g)
			if err != nil {
				return err
			}
			lang := a11y.ParseLang(cfg.Language)
			q := ""
			if len(args) == 1 {
				q = args[0]
			}
			found := a11y.SearchClauses(q)
			if len(found) == 0 {
				return fmt.Errorf("clauses: nothing matches %q", q)
			}
			out := cmd.OutOrStdout()
			for _, c := range found {
				fmt.Fprintf(out, "%-24s %s\n", c.Key, c.Label(lang))
			}
			return nil
		},
	}
}
