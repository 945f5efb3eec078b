package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// LedgerFilter filtros de consulta del kardex. Campos vacíos no filtran.
type LedgerFilter struct {
	ProductID     string
	WarehouseID   string
	OperationType string
	OperationID   string
	From          *time.Time
	To            *time.Time
	Limit         int
}

// StockLedgerRepository puerto del kardex: solo inserción y lectura, nunca update ni delete.
type StockLedgerRepository interface {
	// Append inserta la entrada y asigna ID/Seq si vienen vacíos.
	Append(ctx context.Context, entry *entity.StockLedgerEntry) error
	// List devuelve las entradas más recientes primero.
	List(ctx context.Context, filter LedgerFilter) ([]*entity.StockLedgerEntry, error)
	// SumByProduct devuelve la suma de quantity_change por producto.
	SumByProduct(ctx context.Context) (map[string]decimal.Decimal, error)
}
