// Package storage persists match-run provenance records in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/vocamatch/internal/common"
	"github.com/Veraticus/vocamatch/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage records pipeline runs in a local SQLite database.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath is required")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SaveRun inserts one match-run provenance record.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.MatchRun) error {
	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO match_runs
			(id, document_id, document_label, catalog_version, top_score, candidates, accepted, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.DocumentID, run.DocumentLabel, run.CatalogVersion,
		run.TopScore, run.Candidates, run.Accepted, run.Result, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetRun retrieves a single run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.MatchRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, document_id, document_label, catalog_version, top_score, candidates, accepted, result, created_at
		FROM match_runs WHERE id = ?`, id)

	var run model.MatchRun
	err := row.Scan(&run.ID, &run.DocumentID, &run.DocumentLabel, &run.CatalogVersion,
		&run.TopScore, &run.Candidates, &run.Accepted, &run.Result, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.MatchRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document_id, document_label, catalog_version, top_score, candidates, accepted, result, created_at
		FROM match_runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []model.MatchRun
	for rows.Next() {
		var run model.MatchRun
		if err := rows.Scan(&run.ID, &run.DocumentID, &run.DocumentLabel, &run.CatalogVersion,
			&run.TopScore, &run.Candidates, &run.Accepted, &run.Result, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}
