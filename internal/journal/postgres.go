package journal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads journal records out of the session_event_log table
// populated by the recording services. Every row is returned; payloads that
// are not completed sessions are filtered structurally downstream.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource constructs a source backed by the provided pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Snapshot reads the full event log in journaled order.
func (s *PostgresSource) Snapshot(ctx context.Context) ([]Record, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres journal: acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx,
		`SELECT user_id, payload FROM session_event_log ORDER BY event_id`)
	if err != nil {
		return nil, fmt.Errorf("postgres journal: query event log: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var record Record
		if err := rows.Scan(&record.Key, &record.Value); err != nil {
			return nil, fmt.Errorf("postgres journal: scan event row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres journal: iterate event log: %w", err)
	}

	return records, nil
}
