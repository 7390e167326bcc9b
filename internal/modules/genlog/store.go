// README: Postgres persistence for generation_log.
package genlog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles generation_log persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Insert appends e.
func (s *Store) Insert(ctx context.Context, e Entry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO generation_log (prompt_key, provider, outcome, raw_output, detail, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.PromptKey, e.Provider, e.Outcome, e.RawOutput, e.Detail, e.Latency.Milliseconds(), e.CreatedAt)
	return err
}

// CountByOutcome returns how many entries for promptKey ended with outcome.
func (s *Store) CountByOutcome(ctx context.Context, promptKey, outcome string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM generation_log WHERE prompt_key = $1 AND outcome = $2
	`, promptKey, outcome).Scan(&n)
	return n, err
}
