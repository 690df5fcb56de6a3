package history

// Schema contains the DDL for the audit history tables.
const Schema = `
-- One row per audit: what was audited and the pass/fail tally.
CREATE TABLE IF NOT EXISTS audit_runs (
    run_id     TEXT PRIMARY KEY,
    subject    TEXT NOT NULL,
    source     TEXT NOT NULL DEFAULT 'url',
    language   TEXT NOT NULL DEFAULT 'en',
    passed     INTEGER NOT NULL DEFAULT 0,
    failed     INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON audit_runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_subject ON audit_runs(subject);

-- Results in report order.
CREATE TABLE IF NOT EXISTS audit_results (
    run_id   TEXT NOT NULL,
    position INTEGER NOT NULL,
    rule     TEXT NOT NULL,
    passed   INTEGER NOT NULL,
    clause   TEXT NOT NULL DEFAULT '',
    message  TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (run_id, position),
    FOREIGN KEY (run_id) REFERENCES audit_runs(run_id) ON DELETE CASCADE
);
`
