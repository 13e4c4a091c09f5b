package store

import (
	"context"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequence numbers every diagnosis and LLM event from one counter, so rows
// from both tables can be merged in the order they happened.
type sequence struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

func newSequence(ctx context.Context, drv *entsql.Driver) (*sequence, error) {
	query, args := entsql.Dialect(drv.Dialect()).
		Insert(sequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequence{drv: drv}, nil
}

const nextSequenceQuery = `UPDATE ` + sequenceTable + ` SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`

// Next reserves and returns the next number.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, nextSequenceQuery, []any{}, &rows); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, fmt.Errorf("next sequence: counter row missing")
	}
	var n int64
	if err := rows.Scan(&n); err != nil {
		return 0, fmt.Errorf("scan sequence: %w", err)
	}
	return n, nil
}
