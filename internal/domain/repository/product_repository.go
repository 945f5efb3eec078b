package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos. Campos vacíos no filtran.
type ProductFilter struct {
	Search     string // coincide con nombre o SKU
	CategoryID string
	Active     *bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven (nil, nil) cuando no existe el registro.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica solo campos descriptivos; nunca current_stock ni initial_stock.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock escribe current_stock (uso exclusivo del servicio de mutación de stock).
	UpdateStock(ctx context.Context, id string, quantity decimal.Decimal, at time.Time) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListLowStock devuelve los activos con current_stock <= min_stock_level, ascendente por current_stock.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
