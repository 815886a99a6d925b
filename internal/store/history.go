package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"

	_ "modernc.org/sqlite"
)

// Record is one stored verdict
type Record struct {
	ID        string        `json:"id"`
	Identity  string        `json:"identity"`
	URL       string        `json:"url,omitempty"`
	Company   string        `json:"company"`
	Title     string        `json:"title"`
	Verdict   model.Verdict `json:"verdict"`
	Keywords  []string      `json:"keywords,omitempty"`
	Freshness string        `json:"freshness"`
	ScannedAt time.Time     `json:"scanned_at"`
}

// timeLayout is fixed width so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// History is the SQLite-backed verdict log
type History struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path. ":memory:" gives a
// private in-process database.
func Open(ctx context.Context, path string) (*History, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("create history dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" a single database and serializes writers
	db.SetMaxOpenConns(1)

	h := &History{db: db}
	if err := h.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS verdicts (
		id TEXT PRIMARY KEY,
		identity TEXT NOT NULL,
		url TEXT,
		company TEXT,
		title TEXT,
		status TEXT NOT NULL,
		reason TEXT NOT NULL,
		verdict JSON NOT NULL,
		keywords JSON,
		freshness TEXT,
		scanned_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_verdicts_scanned_at ON verdicts (scanned_at);
	CREATE INDEX IF NOT EXISTS idx_verdicts_identity ON verdicts (identity);`
	if _, err := h.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("migrate history: %w", err)
	}
	return nil
}

// Record stores a final result and returns its generated ID. Loading
// results are interim and are skipped with an empty ID.
func (h *History) Record(ctx context.Context, res model.Result) (string, error) {
	if res.Verdict.Status == model.StatusLoading {
		return "", nil
	}

	verdictJSON, err := json.Marshal(res.Verdict)
	if err != nil {
		return "", fmt.Errorf("marshal verdict: %w", err)
	}
	keywordsJSON, err := json.Marshal(res.Keywords)
	if err != nil {
		return "", fmt.Errorf("marshal keywords: %w", err)
	}

	scannedAt := res.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = time.Now()
	}

	id := uuid.NewString()
	query := `INSERT INTO verdicts (
		id, identity, url, company, title, status, reason, verdict, keywords, freshness, scanned_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = h.db.ExecContext(ctx, query,
		id, res.Identity, res.Meta.URL, res.Meta.Company, res.Meta.Title,
		string(res.Verdict.Status), string(res.Verdict.Reason),
		string(verdictJSON), string(keywordsJSON), res.Meta.Freshness.Label,
		scannedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("insert verdict: %w", err)
	}
	return id, nil
}

// Recent returns up to limit records, newest first
func (h *History) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, identity, url, company, title, verdict, keywords, freshness, scanned_at
		FROM verdicts
		ORDER BY scanned_at DESC, rowid DESC
		LIMIT ?`
	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return out, nil
}

// Count returns the number of stored records
func (h *History) Count(ctx context.Context) (int, error) {
	var n int
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM verdicts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// Close closes the database
func (h *History) Close() error {
	return h.db.Close()
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		r            Record
		url          sql.NullString
		company      sql.NullString
		title        sql.NullString
		verdictJSON  string
		keywordsJSON sql.NullString
		freshness    sql.NullString
		scannedAt    string
	)
	if err := rows.Scan(&r.ID, &r.Identity, &url, &company, &title, &verdictJSON, &keywordsJSON, &freshness, &scannedAt); err != nil {
		return Record{}, fmt.Errorf("scan history row: %w", err)
	}

	if err := json.Unmarshal([]byte(verdictJSON), &r.Verdict); err != nil {
		return Record{}, fmt.Errorf("decode verdict %s: %w", r.ID, err)
	}
	if keywordsJSON.Valid && keywordsJSON.String != "" {
		_ = json.Unmarshal([]byte(keywordsJSON.String), &r.Keywords)
	}

	r.URL = url.String
	r.Company = company.String
	r.Title = title.String
	r.Freshness = freshness.String
	if t, err := time.Parse(timeLayout, scannedAt); err == nil {
		r.ScannedAt = t
	}
	return r, nil
}
