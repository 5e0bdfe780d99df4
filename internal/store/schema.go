package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id               TEXT PRIMARY KEY,
    started_at           TEXT NOT NULL,
    scenario             TEXT NOT NULL,
    output_dir           TEXT NOT NULL,
    written              INTEGER NOT NULL DEFAULT 0,
    unchanged            INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS artifacts (
    path                 TEXT PRIMARY KEY,
    sha256               TEXT NOT NULL,
    size_bytes           INTEGER NOT NULL,
    run_id               TEXT NOT NULL REFERENCES runs(run_id),
    written_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_artifacts_run ON artifacts(run_id);
`
