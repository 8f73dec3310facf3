// Package storage persists finished audit results. Persistence is the
// caller's concern, not the pipeline's: the crawl itself never reads or
// writes previous audits, each request is fully isolated.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fintamas01/geoaudit/internal/audit"

	// SQLite database driver (CGO-free)
	_ "modernc.org/sqlite"
)

// AuditSummary is one stored audit row without the JSON payloads.
type AuditSummary struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	TargetDomain string    `json:"targetDomain"`
	TotalScore   int       `json:"totalScore"`
	PagesCrawled int       `json:"pagesCrawled"`
	AuditedAt    time.Time `json:"auditedAt"`
}

// SQLiteStore stores audits in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection prevents lock conflicts between CLI and server use.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveAudit stores one finished audit and returns its row id.
func (s *SQLiteStore) SaveAudit(result *audit.Result) (int64, error) {
	breakdownJSON, err := json.Marshal(result.ScoreBreakdown)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal breakdown: %w", err)
	}
	signalsJSON, err := json.Marshal(result.SiteSignals)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal signals: %w", err)
	}
	evidenceJSON, err := json.Marshal(result.Evidence)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal evidence: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO audits (url, target_domain, total_score, pages_crawled,
			breakdown_json, signals_json, evidence_json, duration_ms, audited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.URL, result.TargetDomain, result.ScoreBreakdown.Total,
		result.PagesCrawled, string(breakdownJSON), string(signalsJSON),
		string(evidenceJSON), result.DurationMS, result.AuditedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert audit: %w", err)
	}

	return res.LastInsertId()
}

// ListRecent returns the most recent audits, newest first.
func (s *SQLiteStore) ListRecent(limit int) ([]AuditSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, url, target_domain, total_score, pages_crawled, audited_at
		FROM audits
		ORDER BY audited_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []AuditSummary
	for rows.Next() {
		var a AuditSummary
		if err := rows.Scan(&a.ID, &a.URL, &a.TargetDomain, &a.TotalScore,
			&a.PagesCrawled, &a.AuditedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
