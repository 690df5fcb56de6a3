// CLAUDE:SUMMARY Audit orchestration: acquire a document, run the rule engine, summarize, export CSV/PDF, record history.
// Package auditor wires acquisition, the rule engine, report formatting and
// history into one-shot audits.
package auditor

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"github.com/hazyhaar/a11ycheck/a11y"
	"github.com/hazyhaar/a11ycheck/history"
	"github.com/hazyhaar/a11ycheck/render"
	"github.com/hazyhaar/a11ycheck/report"
)

// LocalSubject names audits of local files and uploaded markup in reports.
const LocalSubject = "<local file>"

// Audit is the outcome of one audit.
type Audit struct {
	RunID    string // empty when history is disabled
	Subject  string
	Source   string
	Language language.Tag
	Report   a11y.Report
	Summary  a11y.Summary
}

// Auditor runs audits. It is not safe for concurrent use while the browser
// renderer is starting.
type Auditor struct {
	cfg      *Config
	engine   *a11y.Engine
	renderer render.Renderer
	history  *history.Store
	logger   *slog.Logger
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithRenderer replaces the renderer built from Config.Render.
func WithRenderer(r render.Renderer) Option {
	return func(a *Auditor) { a.renderer = r }
}

// New creates an Auditor. The history store is opened when configured.
func New(cfg *Config, logger *slog.Logger, opts ...Option) (*Auditor, error) {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	a := &Auditor{
		cfg: cfg,
		engine: a11y.NewEngine(a11y.Config{
			Language:       a11y.ParseLang(cfg.Language),
			StatementTerms: cfg.StatementTerms,
			Logger:         logger,
		}),
		logger: logger,
	}
	for _, o := range opts {
		o(a)
	}

	if a.renderer == nil {
		rcfg := cfg.Render
		rcfg.Logger = logger
		r, err := render.New(rcfg)
		if err != nil {
			return nil, fmt.Errorf("auditor: %w", err)
		}
		a.renderer = r
	}

	if cfg.History.DBPath != "" {
		s, err := history.Open(cfg.History.DBPath)
		if err != nil {
			render.Close(a.renderer)
			return nil, fmt.Errorf("auditor: %w", err)
		}
		a.history = s
	}
	return a, nil
}

// Close releases the browser and the history store.
func (a *Auditor) Close() error {
	err := render.Close(a.renderer)
	if a.history != nil {
		if herr := a.history.Close(); err == nil {
			err = herr
		}
	}
	return err
}

// Language returns the report language.
func (a *Auditor) Language() language.Tag {
	return a.engine.Language()
}

// History returns the history store, or nil when disabled.
func (a *Auditor) History() *history.Store {
	return a.history
}

// AuditURL renders target and audits it. Acquisition failures yield the
// network sentinel report, never an error.
func (a *Auditor) AuditURL(ctx context.Context, target string) *Audit {
	rep := a.engine.RunSource(ctx, func(ctx context.Context) (*html.Node, error) {
		return a.renderer.Render(ctx, target)
	})
	return a.finish(ctx, target, history.SourceURL, rep)
}

// AuditFile audits a local HTML file.
func (a *Auditor) AuditFile(ctx context.Context, path string) *Audit {
	rep := a.engine.RunSource(ctx, func(context.Context) (*html.Node, error) {
		return render.ParseFile(path, a.cfg.Render.MaxBodySize)
	})
	return a.finish(ctx, LocalSubject, history.SourceFile, rep)
}

// AuditMarkup audits an HTML string, such as an uploaded file's contents.
func (a *Auditor) AuditMarkup(ctx context.Context, markup string) *Audit {
	rep := a.engine.RunSource(ctx, func(context.Context) (*html.Node, error) {
		return render.ParseMarkup(markup)
	})
	return a.finish(ctx, LocalSubject, history.SourceMarkup, rep)
}

func (a *Auditor) finish(ctx context.Context, subject, source string, rep a11y.Report) *Audit {
	au := &Audit{
		Subject:  subject,
		Source:   source,
		Language: a.engine.Language(),
		Report:   rep,
		Summary:  a11y.Summarize(rep),
	}
	a.logger.Info("auditor: audited",
		"subject", subject, "source", source,
		"passed", au.Summary.Passed, "failed", au.Summary.Failed)

	if a.history != nil {
		run := &history.Run{Subject: subject, Source: source, Language: au.Language.String()}
		if err := a.history.Record(ctx, run, rep); err != nil {
			a.logger.Warn("auditor: history record failed", "subject", subject, "error", err)
		} else {
			au.RunID = run.ID
		}
	}
	return au
}

// Load rebuilds a recorded audit from history.
func (a *Auditor) Load(ctx context.Context, runID string) (*Audit, error) {
	if a.history == nil {
		return nil, fmt.Errorf("auditor: history is disabled")
	}
	run, err := a.history.Get(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("auditor: %w", err)
	}
	if run == nil {
		return nil, fmt.Errorf("auditor: run %s not found", runID)
	}
	rep, err := a.history.Results(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("auditor: %w", err)
	}
	return &Audit{
		RunID:    run.ID,
		Subject:  run.Subject,
		Source:   run.Source,
		Language: a11y.ParseLang(run.Language),
		Report:   rep,
		Summary:  a11y.Summarize(rep),
	}, nil
}

// Delete removes a recorded audit from history.
func (a *Auditor) Delete(ctx context.Context, runID string) error {
	if a.history == nil {
		return fmt.Errorf("auditor: history is disabled")
	}
	run, err := a.history.Get(ctx, runID)
	if err != nil {
		return fmt.Errorf("auditor: %w", err)
	}
	if run == nil {
		return fmt.Errorf("auditor: run %s not found", runID)
	}
	if err := a.history.Delete(ctx, runID); err != nil {
		return fmt.Errorf("auditor: %w", err)
	}
	return nil
}

// Artifacts describes exported files.
type Artifacts struct {
	CSVPath  string
	PDFPath  string
	PDFPages int
}

// Export writes the CSV and PDF renditions of au. An empty path skips that
// format.
func (a *Auditor) Export(au *Audit, csvPath, pdfPath string) (*Artifacts, error) {
	art := &Artifacts{}

	if csvPath != "" {
		data, err := report.FormatCSV(au.Report, au.Language)
		if err != nil {
			return nil, fmt.Errorf("auditor: csv: %w", err)
		}
		if err := os.WriteFile(csvPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("auditor: write csv: %w", err)
		}
		art.CSVPath = csvPath
	}

	if pdfPath != "" {
		data, err := report.FormatPDF(au.Report, au.Subject)
		if err != nil {
			return nil, fmt.Errorf("auditor: pdf: %w", err)
		}
		info, err := report.InspectPDF(data)
		if err != nil {
			return nil, fmt.Errorf("auditor: verify pdf: %w", err)
		}
		if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("auditor: write pdf: %w", err)
		}
		art.PDFPath = pdfPath
		art.PDFPages = info.PageCount
	}

	a.logger.Debug("auditor: exported", "csv", art.CSVPath, "pdf", art.PDFPath, "pages", art.PDFPages)
	return art, nil
}
