package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa el costo promedio ponderado (HPP) con división entera hacia abajo.
//
//	NuevoCosto = floor((StockActual*CostoActual + CantEntrada*CostoEntrada) / (StockActual + CantEntrada))
//
// Devuelve costoActual sin cambios si cantEntrada <= 0, costoEntrada <= 0, el denominador no es
// positivo o el resultado sería negativo (stock previo negativo). Nunca falla.
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada int64) int64 {
	if cantEntrada <= 0 || costoEntrada <= 0 {
		return costoActual
	}
	sum := stockActual + cantEntrada
	if sum <= 0 {
		return costoActual
	}
	num := stockActual*costoActual + cantEntrada*costoEntrada
	newCost := floorDiv(num, sum)
	if newCost < 0 {
		return costoActual
	}
	return newCost
}

// RequiredQuantity cantidad de ingrediente a consumir para producir requested unidades:
// ceil(requested * qtyPerUnit). Nunca consume de menos.
func RequiredQuantity(requested int64, qtyPerUnit decimal.Decimal) int64 {
	return decimal.NewFromInt(requested).Mul(qtyPerUnit).Ceil().IntPart()
}

// FinishedGoodUnitCost costo unitario de entrada del producto terminado:
// round(totalIngredientCost / quantity), o currentCost si los ingredientes no tienen costo.
// El redondeo es a par (half-even) para mantener paridad con los libros existentes.
func FinishedGoodUnitCost(totalIngredientCost, quantity, currentCost int64) int64 {
	if totalIngredientCost <= 0 || quantity <= 0 {
		return currentCost
	}
	return decimal.NewFromInt(totalIngredientCost).
		Div(decimal.NewFromInt(quantity)).
		RoundBank(0).
		IntPart()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
