package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ugaemi/divecatch-server/internal/record"
)

const schema = `
CREATE TABLE IF NOT EXISTS chase_records (
    id TEXT PRIMARY KEY,
    session_id TEXT UNIQUE NOT NULL,
    outcome TEXT NOT NULL,
    capture_time DOUBLE PRECISION,
    hops INTEGER NOT NULL DEFAULT 0,
    dives INTEGER NOT NULL DEFAULT 0,
    ticks INTEGER NOT NULL DEFAULT 0,
    started_at TIMESTAMPTZ NOT NULL,
    ended_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chase_records_ended_at ON chase_records(ended_at DESC);
`

const selectColumns = `SELECT id, session_id, outcome, capture_time, hops, dives, ticks, started_at, ended_at
		 FROM chase_records`

// PostgresStore implements RecordStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Save inserts a finished session record.
func (s *PostgresStore) Save(ctx context.Context, rec *record.Record) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO chase_records (id, session_id, outcome, capture_time, hops, dives, ticks, started_at, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.SessionID, rec.Outcome, rec.CaptureTime, rec.Hops, rec.Dives, rec.Ticks, rec.StartedAt, rec.EndedAt)
	return err
}

// FindByID looks up a record by ID.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (*record.Record, error) {
	row := s.pool.QueryRow(ctx, selectColumns+` WHERE id = $1`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// FindBySession looks up the record of a session.
func (s *PostgresStore) FindBySession(ctx context.Context, sessionID string) (*record.Record, error) {
	row := s.pool.QueryRow(ctx, selectColumns+` WHERE session_id = $1`, sessionID)

	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// Recent returns up to limit records, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]*record.Record, error) {
	rows, err := s.pool.Query(ctx, selectColumns+` ORDER BY ended_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanRecord(row pgx.Row) (*record.Record, error) {
	var rec record.Record
	err := row.Scan(&rec.ID, &rec.SessionID, &rec.Outcome, &rec.CaptureTime,
		&rec.Hops, &rec.Dives, &rec.Ticks, &rec.StartedAt, &rec.EndedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
