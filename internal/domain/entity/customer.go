package entity

import "time"

// Customer representa un cliente (necesario para ventas a crédito).
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}
