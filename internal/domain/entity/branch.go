package entity

import "time"

// Branch representa una sucursal física con su propio stock.
type Branch struct {
	ID        string
	Name      string
	Address   string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
