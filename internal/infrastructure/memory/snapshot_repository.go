package memory

import (
	"context"
	"time"

	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// SnapshotRepository implementación en memoria de la proyección de inventario.
// Las operaciones condicionales chequean y mutan bajo el mismo lock, con la
// misma semántica que la sentencia UPDATE condicional del store real.
type SnapshotRepository struct {
	store *Store
}

// NewSnapshotRepository construye el repositorio.
func NewSnapshotRepository(store *Store) *SnapshotRepository {
	return &SnapshotRepository{store: store}
}

func (r *SnapshotRepository) Get(_ context.Context, securityID string) (*entity.InventorySnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return copySnapshot(r.store.snapshots[securityID]), nil
}

// GetForUpdate en memoria equivale a Get: la serialización la da el TxRunner.
func (r *SnapshotRepository) GetForUpdate(ctx context.Context, securityID string) (*entity.InventorySnapshot, error) {
	return r.Get(ctx, securityID)
}

func (r *SnapshotRepository) Upsert(_ context.Context, snap *entity.InventorySnapshot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.snapshots[snap.SecurityID] = copySnapshot(snap)
	return nil
}

func (r *SnapshotRepository) TryReserve(_ context.Context, securityID string, qty int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap, ok := r.store.snapshots[securityID]
	if !ok || snap.Available() < qty {
		return false, nil
	}
	snap.Blocked += qty
	snap.Version++
	snap.UpdatedAt = time.Now()
	return true, nil
}

func (r *SnapshotRepository) Release(_ context.Context, securityID string, qty int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap, ok := r.store.snapshots[securityID]
	if !ok || snap.Blocked < qty {
		return false, nil
	}
	snap.Blocked -= qty
	snap.Version++
	snap.UpdatedAt = time.Now()
	return true, nil
}

func (r *SnapshotRepository) CommitTransfer(_ context.Context, securityID string, qty int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap, ok := r.store.snapshots[securityID]
	if !ok || snap.Blocked < qty {
		return false, nil
	}
	snap.Blocked -= qty
	snap.Transferred += qty
	snap.Version++
	snap.UpdatedAt = time.Now()
	return true, nil
}
