package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar el saldo por bodega+producto.
// Usado dentro de transacciones junto con el stock global del producto.
type StockRepository interface {
	// Get devuelve cantidad cero si no hay fila.
	Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Stock, error)
}
