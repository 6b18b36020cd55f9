package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeightedAveragePrice_UnSoloLote(t *testing.T) {
	// 1000 unidades a 10 => promedio 10
	got := WeightedAveragePrice(1000, decimal.NewFromInt(10000))
	assert.True(t, got.Equal(decimal.NewFromInt(10)), "promedio debe ser 10, fue %s", got)
}

func TestWeightedAveragePrice_VariosLotes(t *testing.T) {
	// 100 a 10 + 300 a 14 => (1000+4200)/400 = 13
	total := decimal.NewFromInt(1000).Add(decimal.NewFromInt(4200))
	got := WeightedAveragePrice(400, total)
	assert.True(t, got.Equal(decimal.NewFromInt(13)), "promedio debe ser 13, fue %s", got)
}

func TestWeightedAveragePrice_CantidadCero(t *testing.T) {
	got := WeightedAveragePrice(0, decimal.NewFromInt(500))
	assert.True(t, got.IsZero(), "sin cantidad el promedio es cero")
}

func TestWeightedAveragePrice_NoPierdePrecision(t *testing.T) {
	// 3 unidades con costo total 10 => 10/3 con precisión decimal, no float
	got := WeightedAveragePrice(3, decimal.NewFromInt(10))
	expected := decimal.NewFromInt(10).Div(decimal.NewFromInt(3))
	assert.True(t, got.Equal(expected))
}
