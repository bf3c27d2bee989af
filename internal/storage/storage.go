// Package storage persists stock documents, quality reports and
// pipeline job records as JSONB in Postgres.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpulse/platform/pkg/logger"
)

// Store reads and writes the JSONB document tables.
type Store struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// New creates a Store.
func New(db *pgxpool.Pool, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{db: db, log: log}
}

// Pool returns the underlying database pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.db
}

// EnsureSchema creates the document tables if they do not exist.
// Called once at startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS stock_data (
			symbol     TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS quality_reports (
			id           BIGSERIAL PRIMARY KEY,
			symbol       TEXT NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL,
			doc          JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quality_reports_symbol
			ON quality_reports (symbol, generated_at DESC)`,
		`CREATE TABLE IF NOT EXISTS pipeline_jobs (
			job_id     TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SaveStock upserts one symbol's document.
func (s *Store) SaveStock(ctx context.Context, symbol string, doc map[string]interface{}) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal stock document: %w", err)
	}

	query := `
		INSERT INTO stock_data (symbol, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (symbol) DO UPDATE SET
			doc = EXCLUDED.doc,
			updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, symbol, payload); err != nil {
		return fmt.Errorf("upsert stock %s: %w", symbol, err)
	}
	return nil
}

// GetStock returns one symbol's document, or (nil, nil) when absent.
func (s *Store) GetStock(ctx context.Context, symbol string) (map[string]interface{}, error) {
	var payload []byte
	err := s.db.QueryRow(ctx,
		`SELECT doc FROM stock_data WHERE symbol = $1`, symbol,
	).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read stock %s: %w", symbol, err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode stock %s: %w", symbol, err)
	}
	return doc, nil
}

// ListSymbols returns every stored symbol ordered by recency.
func (s *Store) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT symbol FROM stock_data ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

// SaveQualityReport appends one scoring run for a symbol.
func (s *Store) SaveQualityReport(ctx context.Context, symbol string, generatedAt time.Time, report interface{}) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal quality report: %w", err)
	}

	query := `
		INSERT INTO quality_reports (symbol, generated_at, doc)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.Exec(ctx, query, symbol, generatedAt, payload); err != nil {
		return fmt.Errorf("insert quality report %s: %w", symbol, err)
	}
	return nil
}

// LatestQualityReport returns the newest report document for a
// symbol, or (nil, nil) when none exists.
func (s *Store) LatestQualityReport(ctx context.Context, symbol string) (map[string]interface{}, error) {
	var payload []byte
	err := s.db.QueryRow(ctx, `
		SELECT doc FROM quality_reports
		WHERE symbol = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`, symbol).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read quality report %s: %w", symbol, err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode quality report %s: %w", symbol, err)
	}
	return doc, nil
}

// SaveJob upserts one pipeline job record.
func (s *Store) SaveJob(ctx context.Context, jobID string, job interface{}) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	query := `
		INSERT INTO pipeline_jobs (job_id, doc)
		VALUES ($1, $2)
		ON CONFLICT (job_id) DO UPDATE SET doc = EXCLUDED.doc
	`
	if _, err := s.db.Exec(ctx, query, jobID, payload); err != nil {
		return fmt.Errorf("upsert job %s: %w", jobID, err)
	}
	return nil
}
