package repository

import "context"

// CounterRepository define el puerto del contador de secuencias.
// Increment es atómico increment-and-return: nunca puede devolver un valor
// ya emitido, aunque haya llamadores concurrentes o caídas parciales.
type CounterRepository interface {
	Increment(ctx context.Context, key string) (int64, error)
	// Current devuelve el último valor emitido (0 si la clave no existe). Solo informativo.
	Current(ctx context.Context, key string) (int64, error)
}
