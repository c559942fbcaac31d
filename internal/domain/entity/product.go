package entity

import "time"

// Product representa un producto del catálogo.
// Cost (HPP) es el costo promedio ponderado en unidades enteras de moneda; solo lo cambian
// las entradas de stock. Stock puede ser negativo: vender sin existencias no es un error.
type Product struct {
	ID           string
	Name         string
	Price        int64 // precio de venta base
	Cost         int64 // HPP
	Stock        int64
	Manufactured bool // tiene receta (BOM)
	Photo        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PriceOption es una variante de precio del producto ("Retail", "Grosir", "Promo"...).
// Como máximo una opción por producto está marcada por defecto.
type PriceOption struct {
	ID        string
	ProductID string
	Label     string
	Price     int64
	IsDefault bool
}
