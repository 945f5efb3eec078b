package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOperationRequest body para POST /api/operations/{kind}.
// Recepción: partner_id (proveedor) y warehouse_id. Entrega: partner_id (cliente) y warehouse_id.
// Traslado: from_warehouse_id y to_warehouse_id. Ajuste: warehouse_id y reason.
type CreateOperationRequest struct {
	Number          string                 `json:"number" validate:"omitempty,max=50"`
	PartnerID       string                 `json:"partner_id" validate:"omitempty,uuid"`
	WarehouseID     string                 `json:"warehouse_id" validate:"omitempty,uuid"`
	FromWarehouseID string                 `json:"from_warehouse_id" validate:"omitempty,uuid"`
	ToWarehouseID   string                 `json:"to_warehouse_id" validate:"omitempty,uuid"`
	Date            *time.Time             `json:"date"`
	Reason          string                 `json:"reason" validate:"omitempty,max=200"`
	Notes           string                 `json:"notes"`
	Lines           []OperationLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// OperationLineRequest línea de operación. En ajustes se usa new_quantity.
type OperationLineRequest struct {
	ProductID   string           `json:"product_id" validate:"required,uuid"`
	Quantity    decimal.Decimal  `json:"quantity"`
	NewQuantity *decimal.Decimal `json:"new_quantity,omitempty"`
}

// OperationListRequest filtros de GET /api/operations/{kind}.
type OperationListRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=draft done"`
}

// OperationLineResponse línea con el producto resuelto para mostrar.
type OperationLineResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	ProductName string           `json:"product_name,omitempty"`
	SKU         string           `json:"sku,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	NewQuantity *decimal.Decimal `json:"new_quantity,omitempty"`
	OldQuantity *decimal.Decimal `json:"old_quantity,omitempty"`
	Difference  *decimal.Decimal `json:"difference,omitempty"`
}

// OperationResponse operación con contraparte, bodegas y líneas resueltas.
type OperationResponse struct {
	ID              string                  `json:"id"`
	Kind            string                  `json:"kind"`
	Number          string                  `json:"number"`
	Status          string                  `json:"status"`
	PartnerID       string                  `json:"partner_id,omitempty"`
	PartnerName     string                  `json:"partner_name,omitempty"`
	WarehouseID     string                  `json:"warehouse_id"`
	WarehouseName   string                  `json:"warehouse_name,omitempty"`
	ToWarehouseID   string                  `json:"to_warehouse_id,omitempty"`
	ToWarehouseName string                  `json:"to_warehouse_name,omitempty"`
	Date            time.Time               `json:"date"`
	Reason          string                  `json:"reason,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	CreatedBy       string                  `json:"created_by"`
	ValidatedBy     string                  `json:"validated_by,omitempty"`
	ValidatedAt     *time.Time              `json:"validated_at,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
	Lines           []OperationLineResponse `json:"lines"`
}

// OperationListResponse lista paginada de operaciones.
type OperationListResponse struct {
	Items []OperationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
