package sequence_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabidey/privity-sub000/internal/application/sequence"
	"github.com/kabidey/privity-sub000/internal/infrastructure/memory"
)

func newGenerator() *sequence.Generator {
	return sequence.NewGenerator(memory.NewCounterRepository(memory.NewStore()))
}

func TestGenerator_NumerosSecuenciales(t *testing.T) {
	g := newGenerator()
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	n1, err := g.NextBookingNumber(context.Background(), at)
	require.NoError(t, err)
	n2, err := g.NextBookingNumber(context.Background(), at)
	require.NoError(t, err)

	assert.Equal(t, "PVT/2026/000001", n1)
	assert.Equal(t, "PVT/2026/000002", n2)
}

func TestGenerator_ClavesPorAnioIndependientes(t *testing.T) {
	g := newGenerator()
	y2026 := time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)
	y2027 := time.Date(2027, 1, 1, 0, 1, 0, 0, time.UTC)

	n1, err := g.NextBookingNumber(context.Background(), y2026)
	require.NoError(t, err)
	n2, err := g.NextBookingNumber(context.Background(), y2027)
	require.NoError(t, err)

	// El cambio de año reinicia la numeración.
	assert.Equal(t, "PVT/2026/000001", n1)
	assert.Equal(t, "PVT/2027/000001", n2)
}

func TestGenerator_SecuenciasPorTipoIndependientes(t *testing.T) {
	g := newGenerator()
	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	b, err := g.NextBookingNumber(context.Background(), at)
	require.NoError(t, err)
	po, err := g.NextPurchaseOrderNumber(context.Background(), at)
	require.NoError(t, err)

	assert.Equal(t, "PVT/2026/000001", b)
	assert.Equal(t, "PO/2026/000001", po)
}

func TestGenerator_ConcurrenciaSinDuplicados(t *testing.T) {
	g := newGenerator()
	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	const callers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := g.NextBookingNumber(context.Background(), at)
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[n], "número duplicado: %s", n)
			seen[n] = true
		}()
	}
	wg.Wait()

	assert.Len(t, seen, callers)
}
