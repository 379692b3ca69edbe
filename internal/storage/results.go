// Package storage keeps benchmark results in an SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
)

// Run kinds.
const (
	KindAccuracy = "accuracy"
	KindSpeed    = "speed"
)

const schema = `
    create table if not exists runs (
        id         integer primary key autoincrement,
        kind       text    not NULL,
        corpus     text    not NULL,
        training   text    not NULL,
        expected   integer default NULL,
        actual     integer default NULL,
        percent    real    default NULL,
        iterations integer default NULL,
        avg_secs   real    default NULL,
        created_at integer not NULL
    );

    create index if not exists runs_kind on runs(kind);
`

// Run is one stored benchmark result. Fields that do not apply to Kind are zero.
type Run struct {
	ID         int64
	Kind       string
	Corpus     string
	Training   string
	Expected   int
	Actual     int
	Percent    float64
	Iterations int
	AvgSeconds float64
	CreatedAt  time.Time
}

// Store records benchmark runs.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the results database at path. ":memory:" gives a private in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &domain.FilesystemError{Op: "open", Path: path, Err: err}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// RecordAccuracy stores an accuracy measurement.
func (s *Store) RecordAccuracy(ctx context.Context, corpus, training string, r domain.AccuracyResult) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`insert into runs (kind, corpus, training, expected, actual, percent, created_at) values (?, ?, ?, ?, ?, ?, ?)`,
		KindAccuracy, corpus, training, r.Expected, r.Actual, r.Percent, s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("record accuracy: %w", err)
	}
	return res.LastInsertId()
}

// RecordSpeed stores a speed measurement.
func (s *Store) RecordSpeed(ctx context.Context, corpus, training string, r domain.SpeedResult) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`insert into runs (kind, corpus, training, iterations, avg_secs, created_at) values (?, ?, ?, ?, ?, ?)`,
		KindSpeed, corpus, training, len(r.Iterations), r.AverageSeconds(), s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("record speed: %w", err)
	}
	return res.LastInsertId()
}

// Runs returns the stored runs of the given kind, newest first. An empty kind returns every run.
func (s *Store) Runs(ctx context.Context, kind string) ([]Run, error) {
	query := `select id, kind, corpus, training, expected, actual, percent, iterations, avg_secs, created_at from runs`
	var args []any
	if kind != "" {
		query += ` where kind = ?`
		args = append(args, kind)
	}
	query += ` order by id desc`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                      Run
			expected, actual, iter sql.NullInt64
			percent, avg           sql.NullFloat64
			created                int64
		)
		if err := rows.Scan(&r.ID, &r.Kind, &r.Corpus, &r.Training, &expected, &actual, &percent, &iter, &avg, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Expected = int(expected.Int64)
		r.Actual = int(actual.Int64)
		r.Percent = percent.Float64
		r.Iterations = int(iter.Int64)
		r.AvgSeconds = avg.Float64
		r.CreatedAt = time.Unix(0, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
