package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo contador de secuencias sobre PostgreSQL.
// Increment es una sola sentencia upsert con RETURNING: el incremento y la
// lectura del valor emitido son atómicos aunque haya llamadores concurrentes.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador del contador de secuencias.
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

func (r *CounterRepo) Increment(ctx context.Context, key string) (int64, error) {
	query := `
		INSERT INTO counters (key, value, updated_at)
		VALUES ($1, 1, now())
		ON CONFLICT (key) DO UPDATE SET value = counters.value + 1, updated_at = now()
		RETURNING value`
	var value int64
	if err := r.q.QueryRow(ctx, query, key).Scan(&value); err != nil {
		return 0, fmt.Errorf("increment counter %s: %w", key, err)
	}
	return value, nil
}

func (r *CounterRepo) Current(ctx context.Context, key string) (int64, error) {
	var value int64
	err := r.q.QueryRow(ctx, `SELECT value FROM counters WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("current counter %s: %w", key, err)
	}
	return value, nil
}
