package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

const defaultLedgerLimit = 100

// LedgerQueryUseCase consultas de solo lectura sobre el kardex y los saldos.
type LedgerQueryUseCase struct {
	ledger     repository.StockLedgerRepository
	stock      repository.StockRepository
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
}

// NewLedgerQueryUseCase construye el caso de uso.
func NewLedgerQueryUseCase(
	ledger repository.StockLedgerRepository,
	stock repository.StockRepository,
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
) *LedgerQueryUseCase {
	return &LedgerQueryUseCase{ledger: ledger, stock: stock, products: products, warehouses: warehouses}
}

// List devuelve el kardex filtrado, más reciente primero.
func (uc *LedgerQueryUseCase) List(ctx context.Context, in dto.LedgerQueryRequest) ([]dto.LedgerEntryResponse, error) {
	filter := repository.LedgerFilter{
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		OperationType: in.OperationType,
		OperationID:   in.OperationID,
		Limit:         in.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLedgerLimit
	}
	var err error
	if filter.From, err = ParseDate(in.From, false); err != nil {
		return nil, err
	}
	if filter.To, err = ParseDate(in.To, true); err != nil {
		return nil, err
	}
	list, err := uc.ledger.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toLedgerEntryResponse(e))
	}
	return out, nil
}

// WarehouseStock devuelve los saldos informativos de una bodega.
func (uc *LedgerQueryUseCase) WarehouseStock(ctx context.Context, warehouseID string) ([]dto.WarehouseStockResponse, error) {
	wh, err := uc.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.stock.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseStockResponse, 0, len(list))
	for _, s := range list {
		item := dto.WarehouseStockResponse{
			ProductID:   s.ProductID,
			WarehouseID: s.WarehouseID,
			Quantity:    s.Quantity,
			UpdatedAt:   s.UpdatedAt,
		}
		p, err := uc.products.GetByID(ctx, s.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			item.ProductName = p.Name
			item.SKU = p.SKU
		}
		out = append(out, item)
	}
	return out, nil
}

// Reconcile compara initial_stock + Σ quantity_change contra current_stock por producto
// y devuelve las diferencias.
func (uc *LedgerQueryUseCase) Reconcile(ctx context.Context) (*dto.ReconcileReportDTO, error) {
	sums, err := uc.ledger.SumByProduct(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	report := &dto.ReconcileReportDTO{
		ProductsChecked: len(products),
		Mismatches:      []dto.ReconcileItemDTO{},
	}
	for _, p := range products {
		item := reconcileProduct(p, sums[p.ID])
		if !item.Consistent {
			report.Mismatches = append(report.Mismatches, item)
		}
	}
	return report, nil
}

func reconcileProduct(p *entity.Product, sum decimal.Decimal) dto.ReconcileItemDTO {
	expected := p.InitialStock.Add(sum)
	return dto.ReconcileItemDTO{
		ProductID:     p.ID,
		SKU:           p.SKU,
		ProductName:   p.Name,
		InitialStock:  p.InitialStock,
		LedgerSum:     sum,
		ExpectedStock: expected,
		CurrentStock:  p.CurrentStock,
		Consistent:    expected.Equal(p.CurrentStock),
	}
}

// ParseDate acepta RFC3339 o YYYY-MM-DD. Con endOfDay una fecha sin hora se mueve al día
// siguiente (cota superior exclusiva). Vacío devuelve nil.
func ParseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.InvalidInput("fecha inválida %q (use YYYY-MM-DD o RFC3339)", s)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}

func toLedgerEntryResponse(e *entity.StockLedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:              e.ID,
		ProductID:       e.ProductID,
		WarehouseID:     e.WarehouseID,
		OperationType:   e.OperationType,
		OperationID:     e.OperationID,
		OperationNumber: e.OperationNumber,
		QuantityChange:  e.QuantityChange,
		StockBefore:     e.StockBefore,
		StockAfter:      e.StockAfter,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
	}
}
