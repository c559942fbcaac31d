package entity

import "time"

// CartLine es la forma lógica de una línea de carrito, sin importar dónde se almacene.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Photo     string `json:"photo,omitempty"`
	Stock     int64  `json:"stock"`
	Cost      int64  `json:"-"` // HPP vigente, solo para la vista
}

// Session es el estado efímero de una terminal: su carrito privado y el Room adjunto, si hay.
type Session struct {
	ID        string     `json:"id"`
	RoomCode  string     `json:"room_code,omitempty"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Line devuelve el índice de la línea del producto o -1.
func (s *Session) Line(productID string) int {
	for i := range s.Lines {
		if s.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone copia la sesión (las líneas no se comparten).
func (s *Session) Clone() *Session {
	c := *s
	c.Lines = append([]CartLine(nil), s.Lines...)
	return &c
}
