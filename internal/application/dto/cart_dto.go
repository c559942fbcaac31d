package dto

import "time"

// SessionResponse token de sesión de terminal (POST /api/sessions).
type SessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AddCartItemRequest body para POST /api/cart/items.
// Precio: manual_price (> 0) → price_option_id → opción por defecto → precio base.
type AddCartItemRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	Quantity      int64  `json:"quantity"`
	PriceOptionID string `json:"price_option_id,omitempty"`
	ManualPrice   int64  `json:"manual_price,omitempty"`
}

// UpdateCartItemRequest body para PUT /api/cart/items/:productId.
type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// SetCartPriceRequest body para PUT /api/cart/items/:productId/price.
type SetCartPriceRequest struct {
	Price int64 `json:"price"`
}

// CartLineResponse línea del carrito con el stock vigente del producto.
type CartLineResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
	Photo     string `json:"photo,omitempty"`
	Stock     int64  `json:"stock"`
}

// CartViewResponse vista del carrito activo (room o sesión).
type CartViewResponse struct {
	Mode     string             `json:"mode"` // room | session
	RoomCode string             `json:"room_code,omitempty"`
	Lines    []CartLineResponse `json:"lines"`
	Total    int64              `json:"total"`
	Profit   int64              `json:"profit_potential"`
	Count    int64              `json:"count"`
}

// CartCountResponse suma de cantidades del carrito activo.
type CartCountResponse struct {
	Count int64 `json:"count"`
}

// RoomResponse room con la suma de cantidades de sus líneas.
type RoomResponse struct {
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	ItemCount int64     `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomListResponse rooms abiertos y cerrados, del más reciente al más antiguo.
type RoomListResponse struct {
	Open   []RoomResponse `json:"open"`
	Closed []RoomResponse `json:"closed"`
}

// CreateSessionRequest body opcional de POST /api/sessions.
type CreateSessionRequest struct {
	TerminalID string `json:"terminal_id,omitempty" validate:"max=100"`
}
