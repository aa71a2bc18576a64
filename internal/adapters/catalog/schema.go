package catalog

// schemaV1 keeps one row per artifact key; a rewrite replaces the row.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS artifacts (
    split TEXT NOT NULL,
    season INTEGER NOT NULL,
    num_teams INTEGER NOT NULL,
    team_size INTEGER NOT NULL,

    run_id TEXT NOT NULL,
    row_count INTEGER NOT NULL,
    seed TEXT NOT NULL,      -- uint64 as decimal text
    path TEXT NOT NULL,
    sha256 TEXT NOT NULL,
    created_at TEXT NOT NULL, -- RFC3339Nano, UTC

    PRIMARY KEY (split, season, num_teams, team_size)
);
CREATE INDEX IF NOT EXISTS idx_artifacts_run ON artifacts(run_id);
`
