package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductQuantityResult cantidad agregada por producto (top ventas).
type ProductQuantityResult struct {
	ProductID    string
	ProductName  string
	SKU          string
	CategoryName string
	Quantity     decimal.Decimal
}

// RecentPurchaseResult producto recibido recientemente (recepciones validadas).
type RecentPurchaseResult struct {
	ProductID       string
	ProductName     string
	SKU             string
	Quantity        decimal.Decimal
	OperationNumber string
	PartnerName     string
	ValidatedAt     time.Time
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	CountActiveProducts(ctx context.Context) (int, error)
	CountLowStockProducts(ctx context.Context) (int, error)
	CountOperations(ctx context.Context, kind, status string) (int, error)

	// TopSellingProducts suma las líneas de entregas validadas en [from, to),
	// descendente por cantidad y por nombre en empate.
	TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductQuantityResult, error)

	// RecentPurchasedProducts devuelve las líneas de recepciones validadas, más recientes primero.
	RecentPurchasedProducts(ctx context.Context, limit int) ([]RecentPurchaseResult, error)
}
