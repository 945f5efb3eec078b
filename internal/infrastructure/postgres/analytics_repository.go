package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

func (r *AnalyticsRepo) CountActiveProducts(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE is_active`)
}

func (r *AnalyticsRepo) CountLowStockProducts(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE is_active AND current_stock <= min_stock_level`)
}

func (r *AnalyticsRepo) CountOperations(ctx context.Context, kind, status string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM operations WHERE kind = $1 AND status = $2`, kind, status)
}

func (r *AnalyticsRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// TopSellingProducts suma las líneas de entregas done con validated_at en [from, to).
// Los productos eliminados no aparecen (JOIN).
func (r *AnalyticsRepo) TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductQuantityResult, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    p.sku,
	    COALESCE(c.name, '')  AS category_name,
	    SUM(l.quantity)       AS quantity
	FROM operations o
	JOIN operation_lines l ON l.operation_id = o.id
	JOIN products        p ON p.id           = l.product_id
	LEFT JOIN categories c ON c.id           = p.category_id
	WHERE o.kind = $1
	  AND o.status = $2
	  AND o.validated_at >= $3
	  AND o.validated_at <  $4
	GROUP BY p.id, p.name, p.sku, c.name
	ORDER BY quantity DESC, p.name ASC
	LIMIT $5`

	rows, err := r.pool.Query(ctx, query,
		entity.OperationKindDelivery, entity.OperationStatusDone, from, to, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top selling products: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductQuantityResult
	for rows.Next() {
		var row repository.ProductQuantityResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.SKU, &row.CategoryName, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan top selling: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// RecentPurchasedProducts líneas de recepciones done, más recientes primero.
func (r *AnalyticsRepo) RecentPurchasedProducts(ctx context.Context, limit int) ([]repository.RecentPurchaseResult, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    p.sku,
	    l.quantity,
	    o.number,
	    COALESCE(pt.name, '') AS partner_name,
	    o.validated_at
	FROM operations o
	JOIN operation_lines l ON l.operation_id = o.id
	JOIN products        p ON p.id           = l.product_id
	LEFT JOIN partners  pt ON pt.id          = o.partner_id
	WHERE o.kind = $1
	  AND o.status = $2
	ORDER BY o.validated_at DESC, o.number DESC, l.line_no ASC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, entity.OperationKindReceipt, entity.OperationStatusDone, limit)
	if err != nil {
		return nil, fmt.Errorf("recent purchased products: %w", err)
	}
	defer rows.Close()

	var out []repository.RecentPurchaseResult
	for rows.Next() {
		var row repository.RecentPurchaseResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.SKU, &row.Quantity,
			&row.OperationNumber, &row.PartnerName, &row.ValidatedAt); err != nil {
			return nil, fmt.Errorf("scan recent purchase: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
