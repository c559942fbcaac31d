package entity

import "github.com/shopspring/decimal"

// RecipeLine es una arista del BOM: cuánto de IngredientID consume una unidad de ProductID.
type RecipeLine struct {
	ID           string
	ProductID    string // producto terminado
	IngredientID string
	QtyPerUnit   decimal.Decimal // fraccionaria (ej. 2.5)
}
