package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	corearchive "github.com/kilianp07/evoroute/core/archive"
)

// SQLiteStore stores records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	schema := `CREATE TABLE IF NOT EXISTS best_solutions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ts INTEGER,
        run_id TEXT,
        generation INTEGER,
        record TEXT
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append inserts the record.
func (s *SQLiteStore) Append(ctx context.Context, rec corearchive.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO best_solutions (ts, run_id, generation, record) VALUES (?, ?, ?, ?)`,
		rec.Timestamp.Unix(), rec.RunID, rec.Generation, string(data))
	return err
}

// Query returns records matching q ordered by timestamp.
func (s *SQLiteStore) Query(ctx context.Context, q corearchive.Query) ([]corearchive.Record, error) {
	var (
		conds []string
		args  []any
	)
	if q.RunID != "" {
		conds = append(conds, "run_id = ?")
		args = append(args, q.RunID)
	}
	if !q.Start.IsZero() {
		conds = append(conds, "ts >= ?")
		args = append(args, q.Start.Unix())
	}
	if !q.End.IsZero() {
		conds = append(conds, "ts <= ?")
		args = append(args, q.End.Unix())
	}
	query := "SELECT record FROM best_solutions"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY ts, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []corearchive.Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r corearchive.Record
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			continue
		}
		// The ts column stores unix seconds, refine with the exact bounds.
		if q.Matches(r) {
			res = append(res, r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clip(res, q.Limit), nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
