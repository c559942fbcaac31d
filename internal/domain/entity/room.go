package entity

import "time"

// Estados de un Room.
const (
	RoomStatusOpen   = "open"
	RoomStatusClosed = "closed"
)

// Room es un carrito compartido y persistido que varias terminales pueden usar a la vez.
// Pasa de open a closed una sola vez (checkout o cancelación) y no se reabre.
type Room struct {
	ID        string
	Code      string
	Status    string
	CreatedAt time.Time
}

// IsOpen indica si el Room acepta cambios.
func (r *Room) IsOpen() bool { return r != nil && r.Status == RoomStatusOpen }

// RoomItem es una línea persistida del carrito de un Room.
// Price es el precio resuelto al agregar; 0 significa "usar el precio base del producto".
type RoomItem struct {
	RoomID    string
	ProductID string
	Quantity  int64
	Price     int64
}
