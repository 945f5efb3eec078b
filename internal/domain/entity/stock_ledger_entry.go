package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento en el kardex.
const (
	LedgerTypeReceipt     = "receipt"
	LedgerTypeDelivery    = "delivery"
	LedgerTypeTransferIn  = "transfer_in"
	LedgerTypeTransferOut = "transfer_out"
	LedgerTypeAdjustment  = "adjustment"
)

// StockLedgerEntry es un hecho inmutable del kardex.
// Invariante: StockAfter = StockBefore + QuantityChange.
type StockLedgerEntry struct {
	ID              string
	Seq             int64 // orden de inserción, monótono
	ProductID       string
	WarehouseID     string
	OperationType   string
	OperationID     string
	OperationNumber string
	QuantityChange  decimal.Decimal // positivo entrada, negativo salida
	StockBefore     decimal.Decimal
	StockAfter      decimal.Decimal
	CreatedBy       string
	CreatedAt       time.Time
}
