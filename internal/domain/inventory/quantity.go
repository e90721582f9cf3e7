package inventory

import "github.com/shopspring/decimal"

// ClampQuantity normaliza una cantidad de entrada a max(1, floor(q)). Nunca falla: cantidades
// ausentes, cero, negativas o fraccionarias se corrigen en silencio.
func ClampQuantity(q decimal.Decimal) int {
	f := q.Floor()
	if f.LessThan(decimal.NewFromInt(1)) {
		return 1
	}
	if f.GreaterThan(decimal.NewFromInt(maxQuantity)) {
		return maxQuantity
	}
	return int(f.IntPart())
}

// maxQuantity tope para no desbordar int32 en almacenamiento.
const maxQuantity = 1<<31 - 1
