package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock saldo materializado de un producto en una bodega.
// Es informativo: el stock autoritativo es Product.CurrentStock.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
