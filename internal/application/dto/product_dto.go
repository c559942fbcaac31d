package dto

import "time"

// CreateProductRequest entrada para crear un producto. Stock inicial > 0 se registra como entrada en el libro.
type CreateProductRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Price int64  `json:"price" validate:"gte=0"`
	Cost  int64  `json:"cost" validate:"gte=0"`
	Stock int64  `json:"stock" validate:"gte=0"`
	Photo string `json:"photo,omitempty" validate:"max=500"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost ni Stock).
type UpdateProductRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Price *int64  `json:"price" validate:"omitempty,gte=0"`
	Photo *string `json:"photo" validate:"omitempty,max=500"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Price        int64                 `json:"price"`
	Cost         int64                 `json:"cost"`
	Stock        int64                 `json:"stock"`
	Manufactured bool                  `json:"manufactured"`
	Photo        string                `json:"photo,omitempty"`
	PriceOptions []PriceOptionResponse `json:"price_options,omitempty"`
	Recipe       []RecipeLineResponse  `json:"recipe,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PriceOptionInput variante de precio.
type PriceOptionInput struct {
	Label     string `json:"label" validate:"required,max=100"`
	Price     int64  `json:"price" validate:"gte=0"`
	IsDefault bool   `json:"is_default"`
}

// ReplacePricesRequest body para PUT /api/products/:id/prices (reemplazo completo).
type ReplacePricesRequest struct {
	Options []PriceOptionInput `json:"options" validate:"dive"`
}

// PriceOptionResponse variante de precio.
type PriceOptionResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Price     int64  `json:"price"`
	IsDefault bool   `json:"is_default"`
}
