// Package store persists finished session results in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/verte-zerg/typetest/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// sampleBatchSize bounds the ids bound into one samples query, well below
// SQLite's host parameter limit.
const sampleBatchSize = 500

// Store wraps SQLite access for result history.
type Store struct {
	db *sql.DB
}

// Summary aggregates the whole result history.
type Summary struct {
	Count        int
	AvgWPM       float64
	LastWPM      int
	LastAccuracy int
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return st, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Timestamps are unix nanoseconds so that ordering and range filters compare
// numerically.
func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			started_ns INTEGER NOT NULL,
			ended_ns INTEGER NOT NULL,
			mode TEXT NOT NULL,
			text_type TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			raw_wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			consistency INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS result_samples (
			result_id INTEGER NOT NULL,
			idx INTEGER NOT NULL,
			wpm REAL NOT NULL,
			PRIMARY KEY (result_id, idx)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_ended ON results(ended_ns, id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertResult stores a finished result and its WPM samples in one
// transaction.
func (s *Store) InsertResult(ctx context.Context, r model.Result) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO results (started_ns, ended_ns, mode, text_type, difficulty, wpm, raw_wpm, accuracy, consistency, correct, incorrect, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UnixNano(), r.EndedAt.UnixNano(),
		string(r.Mode), string(r.TextType), string(r.Difficulty),
		r.WPM, r.RawWPM, r.Accuracy, r.Consistency,
		r.CorrectCount, r.IncorrectCount,
		int64(r.ElapsedSeconds*1000),
	)
	if err != nil {
		return 0, err
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}
	for i, v := range r.WPMSamples {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO result_samples (result_id, idx, wpm) VALUES (?, ?, ?)`, id, i, v); err != nil {
			return 0, err
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListResults returns results matching the filter, oldest first. A positive
// filter.Last keeps only that many of the newest matches.
func (s *Store) ListResults(ctx context.Context, filter model.ResultFilter) ([]model.StoredResult, error) {
	var clauses []string
	var args []any
	if filter.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, string(filter.Mode))
	}
	if filter.Since != nil {
		clauses = append(clauses, "ended_ns >= ?")
		args = append(args, filter.Since.UnixNano())
	}
	query := `SELECT id, started_ns, ended_ns, mode, text_type, difficulty, wpm, raw_wpm, accuracy, consistency, correct, incorrect, elapsed_ms
		FROM results`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY ended_ns DESC, id DESC"
	if filter.Last > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Last)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []model.StoredResult
	for rows.Next() {
		var (
			r                           model.StoredResult
			startedNs, endedNs, elapsed int64
			mode, textType, difficulty  string
		)
		if err := rows.Scan(&r.ID, &startedNs, &endedNs, &mode, &textType, &difficulty,
			&r.WPM, &r.RawWPM, &r.Accuracy, &r.Consistency, &r.CorrectCount, &r.IncorrectCount, &elapsed); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(0, startedNs)
		r.EndedAt = time.Unix(0, endedNs)
		r.Mode = model.Mode(mode)
		r.TextType = model.TextType(textType)
		r.Difficulty = model.Difficulty(difficulty)
		r.ElapsedSeconds = float64(elapsed) / 1000
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(results)

	for start := 0; start < len(results); start += sampleBatchSize {
		end := min(start+sampleBatchSize, len(results))
		if err := s.attachSamples(ctx, results[start:end]); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Summary returns the result count, mean WPM and the newest result's WPM and
// accuracy without loading the history.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(wpm), 0) FROM results`).Scan(&sum.Count, &sum.AvgWPM); err != nil {
		return Summary{}, err
	}
	if sum.Count == 0 {
		return sum, nil
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT wpm, accuracy FROM results ORDER BY ended_ns DESC, id DESC LIMIT 1`).Scan(&sum.LastWPM, &sum.LastAccuracy); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (s *Store) attachSamples(ctx context.Context, results []model.StoredResult) error {
	if len(results) == 0 {
		return nil
	}
	args := make([]any, len(results))
	byID := make(map[int64]*model.StoredResult, len(results))
	for i := range results {
		args[i] = results[i].ID
		byID[results[i].ID] = &results[i]
	}
	query := fmt.Sprintf(`SELECT result_id, wpm FROM result_samples
		WHERE result_id IN (%s)
		ORDER BY result_id, idx`, strings.TrimSuffix(strings.Repeat("?,", len(results)), ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		var wpm float64
		if err := rows.Scan(&id, &wpm); err != nil {
			return err
		}
		if r, ok := byID[id]; ok {
			r.WPMSamples = append(r.WPMSamples, wpm)
		}
	}
	return rows.Err()
}
