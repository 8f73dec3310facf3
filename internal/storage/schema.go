package storage

const schemaSQL = `
-- One row per finished audit. The breakdown, signals and evidence columns
-- hold the same JSON documents handed to the LLM collaborator, so a stored
-- audit can be replayed or re-analyzed without re-crawling.
CREATE TABLE IF NOT EXISTS audits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    target_domain TEXT NOT NULL,
    total_score INTEGER NOT NULL,
    pages_crawled INTEGER NOT NULL,
    breakdown_json TEXT NOT NULL,
    signals_json TEXT NOT NULL,
    evidence_json TEXT NOT NULL,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    audited_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audits_domain ON audits(target_domain);
CREATE INDEX IF NOT EXISTS idx_audits_audited_at ON audits(audited_at);
`
