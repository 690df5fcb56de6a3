// CLAUDE:SUMMARY SQLite audit history: records each report with its tally, lists recent runs, reloads results.
// Package history persists audit reports in SQLite so past runs can be
// listed and re-exported.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hazyhaar/a11ycheck/a11y"
	"github.com/hazyhaar/a11ycheck/dbopen"
)

// Sources of an audited document.
const (
	SourceURL    = "url"
	SourceFile   = "file"
	SourceMarkup = "markup"
)

// Store is the history database handle.
type Store struct {
	DB *sql.DB
}

// Open opens (or creates) the history database at path and applies Schema.
func Open(path string, opts ...dbopen.Option) (*Store, error) {
	all := append([]dbopen.Option{
		dbopen.WithMkdirAll(),
		dbopen.WithSchema(Schema),
	}, opts...)
	db, err := dbopen.Open(path, all...)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return &Store{DB: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Run is one recorded audit.
type Run struct {
	ID        string `json:"run_id"`
	Subject   string `json:"subject"`
	Source    string `json:"source"`
	Language  string `json:"language"`
	Passed    int    `json:"passed"`
	Failed    int    `json:"failed"`
	CreatedAt int64  `json:"created_at"`
}

// Time returns CreatedAt as a time.Time.
func (r Run) Time() time.Time {
	return time.UnixMilli(r.CreatedAt)
}

// Record stores report under run. ID and CreatedAt are filled in when empty
// and the tally is always recomputed from report.
func (s *Store) Record(ctx context.Context, run *Run, report a11y.Report) error {
	if run.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("history: run id: %w", err)
		}
		run.ID = "run_" + id.String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixMilli()
	}
	if run.Source == "" {
		run.Source = SourceURL
	}
	sum := a11y.Summarize(report)
	run.Passed, run.Failed = sum.Passed, sum.Failed

	return dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO audit_runs (run_id, subject, source, language, passed, failed, created_at)
			VALUES (?,?,?,?,?,?,?)`,
			run.ID, run.Subject, run.Source, run.Language, run.Passed, run.Failed, run.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("history: insert run: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO audit_results (run_id, position, rule, passed, clause, message)
			VALUES (?,?,?,?,?,?)`)
		if err != nil {
			return fmt.Errorf("history: prepare results: %w", err)
		}
		defer stmt.Close()

		for i, res := range report {
			if _, err := stmt.ExecContext(ctx, run.ID, i, res.Rule, boolInt(res.Passed), res.Clause, res.Message); err != nil {
				return fmt.Errorf("history: insert result %d: %w", i, err)
			}
		}
		return nil
	})
}

// Get returns the run with id, or nil when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	r := &Run{}
	err := s.DB.QueryRowContext(ctx, `
		SELECT run_id, subject, source, language, passed, failed, created_at
		FROM audit_runs WHERE run_id = ?`, id).Scan(
		&r.ID, &r.Subject, &r.Source, &r.Language, &r.Passed, &r.Failed, &r.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: get run: %w", err)
	}
	return r, nil
}

// Recent lists the newest runs first. limit <= 0 defaults to 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT run_id, subject, source, language, passed, failed, created_at
		FROM audit_runs ORDER BY created_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Subject, &r.Source, &r.Language, &r.Passed, &r.Failed, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Results reloads the report of a run in its original order.
func (s *Store) Results(ctx context.Context, runID string) (a11y.Report, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT rule, passed, clause, message
		FROM audit_results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("history: list results: %w", err)
	}
	defer rows.Close()

	var report a11y.Report
	for rows.Next() {
		var res a11y.Result
		var passed int
		if err := rows.Scan(&res.Rule, &passed, &res.Clause, &res.Message); err != nil {
			return nil, fmt.Errorf("history: scan result: %w", err)
		}
		res.Passed = passed != 0
		report = append(report, res)
	}
	return report, rows.Err()
}

// Delete removes a run and its results.
func (s *Store) Delete(ctx context.Context, runID string) error {
	return dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		// Explicit so a connection opened without foreign_keys leaves no orphans.
		if _, err := tx.ExecContext(ctx, `DELETE FROM audit_results WHERE run_id = ?`, runID); err != nil {
			return fmt.Errorf("history: delete results: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM audit_runs WHERE run_id = ?`, runID); err != nil {
			return fmt.Errorf("history: delete run: %w", err)
		}
		return nil
	})
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
