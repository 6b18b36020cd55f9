package inventory

import "github.com/shopspring/decimal"

// WeightedAveragePrice implementa el costo promedio ponderado (servicio de dominio).
// Precio = Σ(cantidad*precio) / Σ(cantidad) sobre el historial completo de lotes.
// Se recalcula siempre desde los totales del libro, nunca desde un promedio
// acumulado, para evitar deriva por redondeo o correcciones históricas.
func WeightedAveragePrice(totalQuantity int64, totalCost decimal.Decimal) decimal.Decimal {
	if totalQuantity <= 0 {
		return decimal.Zero
	}
	return totalCost.Div(decimal.NewFromInt(totalQuantity))
}
