package entity

import "time"

// Warehouse representa una bodega. Se referencia desde operaciones y kardex.
type Warehouse struct {
	ID        string
	Name      string // único
	Code      string
	Location  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
