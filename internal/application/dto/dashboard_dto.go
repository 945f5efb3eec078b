package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardKPIsDTO respuesta de GET /api/dashboard/kpis.
type DashboardKPIsDTO struct {
	ActiveProducts     int `json:"active_products"`
	LowStockProducts   int `json:"low_stock_products"`
	PendingReceipts    int `json:"pending_receipts"`    // recepciones en draft
	PendingDeliveries  int `json:"pending_deliveries"`  // entregas en draft
	PendingTransfers   int `json:"pending_transfers"`   // traslados en draft
	PendingAdjustments int `json:"pending_adjustments"` // ajustes en draft
}

// LowStockProductDTO producto en o por debajo del mínimo.
type LowStockProductDTO struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	ProductName   string          `json:"product_name"`
	CategoryName  string          `json:"category_name,omitempty"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	Shortage      decimal.Decimal `json:"shortage"` // min_stock_level - current_stock
}

// TopSellingProductDTO producto con su cantidad entregada en el período.
type TopSellingProductDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name,omitempty"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
}

// TopSellingResponse respuesta de GET /api/dashboard/top-selling.
type TopSellingResponse struct {
	From  time.Time              `json:"from"`
	To    time.Time              `json:"to"`
	Items []TopSellingProductDTO `json:"items"`
}

// RecentPurchaseDTO producto de una recepción validada reciente.
type RecentPurchaseDTO struct {
	ProductID       string          `json:"product_id"`
	SKU             string          `json:"sku"`
	ProductName     string          `json:"product_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	OperationNumber string          `json:"operation_number"`
	SupplierName    string          `json:"supplier_name,omitempty"`
	ReceivedAt      time.Time       `json:"received_at"`
}
