package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/a11ycheck/auditor"
	"github.com/hazyhaar/a11ycheck/report"
)

func newHistoryCmd(g *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded audits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openHistory(g)
			if err != nil {
				return err
			}
			defer a.Close()

			runs, err := a.History().Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %s  %-6s %3d passed %3d failed  %s\n",
					r.ID, r.Time().Format("2006-01-02 15:04"), r.Source, r.Passed, r.Failed, r.Subject)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	cmd.AddCommand(newHistoryShowCmd(g), newHistoryDeleteCmd(g))
	return cmd
}

func newHistoryShowCmd(g *globalFlags) *cobra.Command {
	var csvPath, pdfPath string
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a recorded audit and optionally re-export it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openHistory(g)
			if err != nil {
				return err
			}
			defer a.Close()

			au, err := a.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := report.NewConsole().Write(out, au.Subject, au.Report); err != nil {
				return err
			}
			art, err := a.Export(au, csvPath, pdfPath)
			if err != nil {
				return err
			}
			if art.PDFPath != "" {
				fmt.Fprintf(out, "pdf: %s (%d pages)\n", art.PDFPath, art.PDFPages)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the CSV report to this path")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the PDF report to this path")
	return cmd
}

func newHistoryDeleteCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Remove a recorded audit and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openHistory(g)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted: %s\n", args[0])
			return nil
		},
	}
}

func openHistory(g *globalFlags) (*auditor.Auditor, error) {
	cfg, err := resolveConfig(g)
	if err != nil {
		return nil, err
	}
	if cfg.History.DBPath == "" {
		return nil, errors.New("history: no database, pass --history or set history.db_path")
	}
	return auditor.New(cfg, newLogger(g.logLevel))
}
