package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. current_stock inicia en initial_stock.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID    string          `json:"category_id" validate:"omitempty,uuid"`
	UnitOfMeasure string          `json:"unit_of_measure" validate:"omitempty,max=20"`
	InitialStock  decimal.Decimal `json:"initial_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	IsActive      *bool           `json:"is_active"`
}

// UpdateProductRequest entrada para actualizar un producto.
// CurrentStock e InitialStock existen solo para rechazar su escritura.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	CategoryID    *string          `json:"category_id" validate:"omitempty,uuid"`
	UnitOfMeasure *string          `json:"unit_of_measure" validate:"omitempty,max=20"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
	IsActive      *bool            `json:"is_active"`
	CurrentStock  *decimal.Decimal `json:"current_stock,omitempty" swaggerignore:"true"`
	InitialStock  *decimal.Decimal `json:"initial_stock,omitempty" swaggerignore:"true"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID string `query:"category_id"`
	Active     *bool  `query:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id,omitempty"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	InitialStock  decimal.Decimal `json:"initial_stock"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
