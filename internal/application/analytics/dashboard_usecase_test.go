package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

type env struct {
	store *memory.Store
	ops   *inventory.OperationUseCase
	dash  *analytics.DashboardUseCase
	wh    string
	now   time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	e := &env{store: store, now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
	e.ops = inventory.NewOperationUseCase(inventory.OperationDeps{
		TxRunner:   store,
		Operations: store.Operations(),
		Products:   store.Products(),
		Warehouses: store.Warehouses(),
		Partners:   store.Partners(),
		Clock:      func() time.Time { return e.now },
	})
	e.dash = analytics.NewDashboardUseCase(store.Analytics(), store.Products(), store.Categories())
	e.wh = uuid.New().String()
	require.NoError(t, store.Warehouses().Create(context.Background(), &entity.Warehouse{ID: e.wh, Name: "Central", IsActive: true}))
	return e
}

func (e *env) product(t *testing.T, name, categoryID string, stock, min int64, active bool) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, e.store.Products().Create(context.Background(), &entity.Product{
		ID: id, Name: name, SKU: "SKU-" + name, CategoryID: categoryID, UnitOfMeasure: "unit",
		InitialStock: decimal.NewFromInt(stock), CurrentStock: decimal.NewFromInt(stock),
		MinStockLevel: decimal.NewFromInt(min), IsActive: active,
	}))
	return id
}

func (e *env) run(t *testing.T, kind, partnerID string, validate bool, lines ...dto.OperationLineRequest) {
	t.Helper()
	op, err := e.ops.Create(context.Background(), kind, "u1", dto.CreateOperationRequest{
		WarehouseID: e.wh, PartnerID: partnerID, Lines: lines,
	})
	require.NoError(t, err)
	if validate {
		_, err = e.ops.Validate(context.Background(), kind, op.ID, "u1")
		require.NoError(t, err)
	}
}

func qty(productID string, q int64) dto.OperationLineRequest {
	return dto.OperationLineRequest{ProductID: productID, Quantity: decimal.NewFromInt(q)}
}

func TestGetKPIs(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", "", 10, 5, true)
	e.product(t, "B", "", 1, 5, true)
	e.product(t, "C", "", 0, 5, false)

	e.run(t, entity.OperationKindReceipt, "", false, qty(a, 1))
	e.run(t, entity.OperationKindReceipt, "", true, qty(a, 1))
	e.run(t, entity.OperationKindDelivery, "", false, qty(a, 1))

	kpis, err := e.dash.GetKPIs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, kpis.ActiveProducts)
	assert.Equal(t, 1, kpis.LowStockProducts, "solo cuenta activos")
	assert.Equal(t, 1, kpis.PendingReceipts)
	assert.Equal(t, 1, kpis.PendingDeliveries)
	assert.Equal(t, 0, kpis.PendingTransfers)
	assert.Equal(t, 0, kpis.PendingAdjustments)
}

func TestLowStock_OrdenAscendenteYCategoria(t *testing.T) {
	e := newEnv(t)
	cat := &entity.Category{ID: uuid.New().String(), Name: "Ferretería"}
	require.NoError(t, e.store.Categories().Create(context.Background(), cat))

	e.product(t, "Tornillo", cat.ID, 4, 5, true)
	e.product(t, "Tuerca", "", 1, 5, true)
	e.product(t, "Arandela", "", 5, 5, true) // igual al mínimo también cuenta
	e.product(t, "Clavo", "", 50, 5, true)
	e.product(t, "Inactivo", "", 0, 5, false)

	list, err := e.dash.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Tuerca", list[0].ProductName)
	assert.Equal(t, "Tornillo", list[1].ProductName)
	assert.Equal(t, "Ferretería", list[1].CategoryName)
	assert.Equal(t, "Arandela", list[2].ProductName)
	assert.True(t, list[0].Shortage.Equal(decimal.NewFromInt(4)))
}

func TestTopSelling_SoloEntregasValidadasEnElPeriodo(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "Alfa", "", 100, 0, true)
	b := e.product(t, "Beta", "", 100, 0, true)
	c := e.product(t, "Gamma", "", 100, 0, true)

	e.run(t, entity.OperationKindDelivery, "", true, qty(a, 3), qty(b, 5))
	e.run(t, entity.OperationKindDelivery, "", true, qty(a, 2))
	e.run(t, entity.OperationKindDelivery, "", false, qty(c, 50)) // draft: no cuenta
	e.run(t, entity.OperationKindReceipt, "", true, qty(c, 40))   // recepción: no cuenta

	e.now = time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	e.run(t, entity.OperationKindDelivery, "", true, qty(c, 9)) // fuera del período

	p := analytics.MonthPeriod(2026, time.March)
	out, err := e.dash.TopSelling(context.Background(), &p, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	// empate 5 y 5: desempata por nombre
	assert.Equal(t, "Alfa", out.Items[0].ProductName)
	assert.True(t, out.Items[0].QuantitySold.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "Beta", out.Items[1].ProductName)
	assert.Equal(t, p.From, out.From)

	april := analytics.MonthPeriod(2026, time.April)
	out, err = e.dash.TopSelling(context.Background(), &april, 1)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Gamma", out.Items[0].ProductName)
}

func TestTopSelling_PeriodoInvalido(t *testing.T) {
	e := newEnv(t)
	now := time.Now()
	_, err := e.dash.TopSelling(context.Background(), &analytics.Period{From: now, To: now}, 10)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRecentPurchases(t *testing.T) {
	e := newEnv(t)
	supplier := &entity.Partner{ID: uuid.New().String(), Type: entity.PartnerTypeSupplier, Name: "Proveedor SA"}
	require.NoError(t, e.store.Partners().Create(context.Background(), supplier))
	a := e.product(t, "A", "", 0, 0, true)
	b := e.product(t, "B", "", 0, 0, true)

	e.run(t, entity.OperationKindReceipt, supplier.ID, true, qty(a, 2))
	e.now = e.now.Add(time.Hour)
	e.run(t, entity.OperationKindReceipt, "", true, qty(b, 7))
	e.run(t, entity.OperationKindReceipt, "", false, qty(a, 1))

	out, err := e.dash.RecentPurchases(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].ProductName)
	assert.Equal(t, "A", out[1].ProductName)
	assert.Equal(t, "Proveedor SA", out[1].SupplierName)
	assert.True(t, out[0].ReceivedAt.After(out[1].ReceivedAt))
}
