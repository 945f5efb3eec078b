package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerQueryRequest filtros de GET /api/stock/ledger.
type LedgerQueryRequest struct {
	ProductID     string `query:"product_id" validate:"omitempty,uuid"`
	WarehouseID   string `query:"warehouse_id" validate:"omitempty,uuid"`
	OperationType string `query:"operation_type" validate:"omitempty,oneof=receipt delivery transfer_in transfer_out adjustment"`
	OperationID   string `query:"operation_id" validate:"omitempty,uuid"`
	From          string `query:"from"` // RFC3339 o YYYY-MM-DD
	To            string `query:"to"`
	Limit         int    `query:"limit" validate:"omitempty,min=1,max=1000"`
}

// LedgerEntryResponse entrada del kardex.
type LedgerEntryResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	OperationType   string          `json:"operation_type"`
	OperationID     string          `json:"operation_id"`
	OperationNumber string          `json:"operation_number"`
	QuantityChange  decimal.Decimal `json:"quantity_change"`
	StockBefore     decimal.Decimal `json:"stock_before"`
	StockAfter      decimal.Decimal `json:"stock_after"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// WarehouseStockResponse saldo de un producto en una bodega.
type WarehouseStockResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ReconcileItemDTO comparación kardex vs stock de un producto.
type ReconcileItemDTO struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	ProductName   string          `json:"product_name"`
	InitialStock  decimal.Decimal `json:"initial_stock"`
	LedgerSum     decimal.Decimal `json:"ledger_sum"`
	ExpectedStock decimal.Decimal `json:"expected_stock"` // initial_stock + ledger_sum
	CurrentStock  decimal.Decimal `json:"current_stock"`
	Consistent    bool            `json:"consistent"`
}

// ReconcileReportDTO respuesta de GET /api/stock/reconcile.
type ReconcileReportDTO struct {
	ProductsChecked int                `json:"products_checked"`
	Mismatches      []ReconcileItemDTO `json:"mismatches"`
}
