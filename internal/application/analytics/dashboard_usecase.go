// Package analytics contiene las proyecciones de lectura del dashboard:
// KPIs, productos con stock bajo, más vendidos y compras recientes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

const (
	defaultTopSelling      = 10
	defaultRecentPurchases = 10
	maxReportLimit         = 100
)

// Period rango [From, To) de un reporte.
type Period struct {
	From time.Time
	To   time.Time
}

// MonthPeriod devuelve el mes calendario completo (UTC).
func MonthPeriod(year int, month time.Month) Period {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{From: from, To: from.AddDate(0, 1, 0)}
}

// DashboardUseCase proyecciones del dashboard.
//
// Fuente de datos: AnalyticsRepository, ProductRepository y CategoryRepository (read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	products      repository.ProductRepository
	categories    repository.CategoryRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		products:      products,
		categories:    categories,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// GetKPIs cuenta productos activos, productos con stock bajo y operaciones en draft por tipo.
// Las seis consultas corren en paralelo.
func (uc *DashboardUseCase) GetKPIs(ctx context.Context) (*dto.DashboardKPIsDTO, error) {
	var out dto.DashboardKPIsDTO
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.ActiveProducts, err = uc.analyticsRepo.CountActiveProducts(gctx)
		return wrap("productos activos", err)
	})
	g.Go(func() (err error) {
		out.LowStockProducts, err = uc.analyticsRepo.CountLowStockProducts(gctx)
		return wrap("stock bajo", err)
	})
	pending := []struct {
		kind string
		dst  *int
	}{
		{entity.OperationKindReceipt, &out.PendingReceipts},
		{entity.OperationKindDelivery, &out.PendingDeliveries},
		{entity.OperationKindTransfer, &out.PendingTransfers},
		{entity.OperationKindAdjustment, &out.PendingAdjustments},
	}
	for _, p := range pending {
		p := p
		g.Go(func() (err error) {
			*p.dst, err = uc.analyticsRepo.CountOperations(gctx, p.kind, entity.OperationStatusDraft)
			return wrap(p.kind+" pendientes", err)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// LowStock devuelve los productos activos con current_stock <= min_stock_level,
// ascendente por current_stock.
func (uc *DashboardUseCase) LowStock(ctx context.Context) ([]dto.LowStockProductDTO, error) {
	list, err := uc.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	names, err := uc.categoryNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockProductDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.LowStockProductDTO{
			ProductID:     p.ID,
			SKU:           p.SKU,
			ProductName:   p.Name,
			CategoryName:  names[p.CategoryID],
			CurrentStock:  p.CurrentStock,
			MinStockLevel: p.MinStockLevel,
			Shortage:      p.MinStockLevel.Sub(p.CurrentStock),
		})
	}
	return out, nil
}

// TopSelling suma las cantidades entregadas (entregas done) por producto en el período.
// Sin período usa el mes en curso.
func (uc *DashboardUseCase) TopSelling(ctx context.Context, period *Period, limit int) (*dto.TopSellingResponse, error) {
	p := uc.currentMonth()
	if period != nil {
		p = *period
	}
	if !p.From.Before(p.To) {
		return nil, domain.InvalidInput("el período debe tener from < to")
	}
	limit = clampLimit(limit, defaultTopSelling)
	rows, err := uc.analyticsRepo.TopSellingProducts(ctx, p.From, p.To, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: top ventas: %w", err)
	}
	items := make([]dto.TopSellingProductDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.TopSellingProductDTO{
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			ProductName:  r.ProductName,
			CategoryName: r.CategoryName,
			QuantitySold: r.Quantity,
		})
	}
	return &dto.TopSellingResponse{From: p.From, To: p.To, Items: items}, nil
}

// RecentPurchases devuelve los productos de las recepciones validadas más recientes.
func (uc *DashboardUseCase) RecentPurchases(ctx context.Context, limit int) ([]dto.RecentPurchaseDTO, error) {
	limit = clampLimit(limit, defaultRecentPurchases)
	rows, err := uc.analyticsRepo.RecentPurchasedProducts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compras recientes: %w", err)
	}
	out := make([]dto.RecentPurchaseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RecentPurchaseDTO{
			ProductID:       r.ProductID,
			SKU:             r.SKU,
			ProductName:     r.ProductName,
			Quantity:        r.Quantity,
			OperationNumber: r.OperationNumber,
			SupplierName:    r.PartnerName,
			ReceivedAt:      r.ValidatedAt,
		})
	}
	return out, nil
}

func (uc *DashboardUseCase) currentMonth() Period {
	now := uc.now()
	return MonthPeriod(now.Year(), now.Month())
}

func (uc *DashboardUseCase) categoryNames(ctx context.Context) (map[string]string, error) {
	cats, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxReportLimit {
		return maxReportLimit
	}
	return limit
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}
