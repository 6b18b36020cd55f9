package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
	"github.com/kabidey/privity-sub000/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación de la proyección de inventario sobre PostgreSQL.
// TryReserve/Release/CommitTransfer son una sola sentencia UPDATE condicional:
// el predicado y la mutación se evalúan atómicamente en el servidor, así dos
// reservas concurrentes jamás pueden exceder juntas lo disponible.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador de la proyección de inventario.
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

const snapshotColumns = `security_id, acquired, transferred, blocked, weighted_avg_price, version, updated_at`

func (r *SnapshotRepo) Get(ctx context.Context, securityID string) (*entity.InventorySnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM inventory_snapshots WHERE security_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, securityID))
}

// GetForUpdate bloquea la fila del snapshot dentro de la tx actual (reconstrucción del proyector).
func (r *SnapshotRepo) GetForUpdate(ctx context.Context, securityID string) (*entity.InventorySnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM inventory_snapshots WHERE security_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, securityID))
}

func (r *SnapshotRepo) scanOne(row pgx.Row) (*entity.InventorySnapshot, error) {
	var s entity.InventorySnapshot
	err := row.Scan(
		&s.SecurityID, &s.Acquired, &s.Transferred, &s.Blocked,
		&s.WeightedAvgPrice, &s.Version, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

func (r *SnapshotRepo) Upsert(ctx context.Context, snap *entity.InventorySnapshot) error {
	query := `
		INSERT INTO inventory_snapshots (security_id, acquired, transferred, blocked, weighted_avg_price, version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (security_id) DO UPDATE SET
			acquired = EXCLUDED.acquired,
			transferred = EXCLUDED.transferred,
			blocked = EXCLUDED.blocked,
			weighted_avg_price = EXCLUDED.weighted_avg_price,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		snap.SecurityID, snap.Acquired, snap.Transferred, snap.Blocked,
		snap.WeightedAvgPrice, snap.Version, snap.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// TryReserve incrementa blocked solo si available >= qty, en una sola sentencia.
// RowsAffected == 0 significa inventario insuficiente (o snapshot inexistente).
func (r *SnapshotRepo) TryReserve(ctx context.Context, securityID string, qty int64) (bool, error) {
	query := `
		UPDATE inventory_snapshots
		SET blocked = blocked + $2, version = version + 1, updated_at = now()
		WHERE security_id = $1 AND acquired - transferred - blocked >= $2`
	cmd, err := r.q.Exec(ctx, query, securityID, qty)
	if err != nil {
		if isSerializationFailure(err) {
			return false, domain.ErrConcurrentModification
		}
		return false, fmt.Errorf("try reserve: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Release decrementa blocked solo si blocked >= qty.
func (r *SnapshotRepo) Release(ctx context.Context, securityID string, qty int64) (bool, error) {
	query := `
		UPDATE inventory_snapshots
		SET blocked = blocked - $2, version = version + 1, updated_at = now()
		WHERE security_id = $1 AND blocked >= $2`
	cmd, err := r.q.Exec(ctx, query, securityID, qty)
	if err != nil {
		if isSerializationFailure(err) {
			return false, domain.ErrConcurrentModification
		}
		return false, fmt.Errorf("release: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// CommitTransfer mueve qty de blocked a transferred en una sola sentencia.
func (r *SnapshotRepo) CommitTransfer(ctx context.Context, securityID string, qty int64) (bool, error) {
	query := `
		UPDATE inventory_snapshots
		SET blocked = blocked - $2, transferred = transferred + $2, version = version + 1, updated_at = now()
		WHERE security_id = $1 AND blocked >= $2`
	cmd, err := r.q.Exec(ctx, query, securityID, qty)
	if err != nil {
		if isSerializationFailure(err) {
			return false, domain.ErrConcurrentModification
		}
		return false, fmt.Errorf("commit transfer: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
