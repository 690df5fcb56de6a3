package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/a11ycheck/auditor"
	"github.com/hazyhaar/a11ycheck/render"
	"github.com/hazyhaar/a11ycheck/report"
)

// errViolations makes the process exit non-zero under --strict.
var errViolations = errors.New("accessibility violations found")

func newAuditCmd(g *globalFlags) *cobra.Command {
	var (
		file    string
		csvPath string
		pdfPath string
		mode    string
		timeout time.Duration
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "audit [url]",
		Short: "Audit a URL or a local HTML file",
		Example: `  a11ycheck audit https://example.com
  a11ycheck audit https://example.com --mode browser --pdf report.pdf
  a11ycheck audit --file index.html --csv report.csv --lang he
  curl -s https://example.com | a11ycheck audit --file -`,
		Args: func(cmd *cobra.Command, args []string) error {
			if file == "" && len(args) != 1 {
				return errors.New("audit: give exactly one URL or --file")
			}
			if file != "" && len(args) > 0 {
				return errors.New("audit: URL and --file are mutually exclusive")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(g)
			if err != nil {
				return err
			}
			if mode != "" {
				cfg.Render.Mode = mode
			}
			if timeout > 0 {
				cfg.Render.Timeout = timeout
			}

			a, err := auditor.New(cfg, newLogger(g.logLevel))
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			var au *auditor.Audit
			switch file {
			case "-":
				markup, err := readStdin(cmd.InOrStdin(), cfg.Render.MaxBodySize)
				if err != nil {
					return err
				}
				au = a.AuditMarkup(ctx, markup)
			case "":
				au = a.AuditURL(ctx, args[0])
			default:
				au = a.AuditFile(ctx, file)
			}

			out := cmd.OutOrStdout()
			if err := report.NewConsole().Write(out, au.Subject, au.Report); err != nil {
				return err
			}

			art, err := a.Export(au, csvPath, pdfPath)
			if err != nil {
				return err
			}
			if art.CSVPath != "" {
				fmt.Fprintf(out, "csv: %s\n", art.CSVPath)
			}
			if art.PDFPath != "" {
				fmt.Fprintf(out, "pdf: %s (%d pages)\n", art.PDFPath, art.PDFPages)
			}
			if au.RunID != "" {
				fmt.Fprintf(out, "run: %s\n", au.RunID)
			}

			if strict && au.Summary.Failed > 0 {
				return errViolations
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&file, "file", "", "audit a local HTML file instead of a URL (- reads stdin)")
	f.StringVar(&csvPath, "csv", "", "write the CSV report to this path")
	f.StringVar(&pdfPath, "pdf", "", "write the PDF report to this path")
	f.StringVar(&mode, "mode", "", "acquisition mode: auto, http or browser (overrides config)")
	f.DurationVar(&timeout, "timeout", 0, "acquisition timeout (overrides config)")
	f.BoolVar(&strict, "strict", false, "exit non-zero when any rule fails")
	return cmd
}

// readStdin reads markup piped to the command, refusing more than limit bytes.
func readStdin(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("audit: read stdin: %w", err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: stdin exceeds %d bytes", render.ErrTooLarge, limit)
	}
	return string(data), nil
}
