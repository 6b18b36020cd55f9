package memory

import "context"

// CounterRepository implementación en memoria del contador de secuencias.
// El incremento ocurre bajo lock: dos llamadores concurrentes jamás reciben
// el mismo valor.
type CounterRepository struct {
	store *Store
}

// NewCounterRepository construye el repositorio.
func NewCounterRepository(store *Store) *CounterRepository {
	return &CounterRepository{store: store}
}

func (r *CounterRepository) Increment(_ context.Context, key string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.counters[key]++
	return r.store.counters[key], nil
}

func (r *CounterRepository) Current(_ context.Context, key string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.counters[key], nil
}
