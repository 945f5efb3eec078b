package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// CurrentStock es el total global y solo lo escribe el servicio de mutación de stock.
type Product struct {
	ID            string
	Name          string
	SKU           string // único
	CategoryID    string // vacío si no tiene categoría
	UnitOfMeasure string
	InitialStock  decimal.Decimal
	CurrentStock  decimal.Decimal
	MinStockLevel decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el producto está activo y en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.IsActive && p.CurrentStock.LessThanOrEqual(p.MinStockLevel)
}
