package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

func newLedgerUC(f *fixture) *inventory.LedgerQueryUseCase {
	return inventory.NewLedgerQueryUseCase(f.store.Ledger(), f.store.Stock(), f.store.Products(), f.store.Warehouses())
}

func TestLedgerList_Filtros(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 0)
	b := f.product(t, "B", 10, 0)
	ctx := context.Background()

	rec := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(a, 1), line(b, 1)}})
	_, err := f.uc.Validate(ctx, entity.OperationKindReceipt, rec.ID, actor)
	require.NoError(t, err)
	del := f.create(t, entity.OperationKindDelivery, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(a, 2)}})
	_, err = f.uc.Validate(ctx, entity.OperationKindDelivery, del.ID, actor)
	require.NoError(t, err)

	uc := newLedgerUC(f)

	all, err := uc.List(ctx, dto.LedgerQueryRequest{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entity.LedgerTypeDelivery, all[0].OperationType, "más reciente primero")

	onlyA, err := uc.List(ctx, dto.LedgerQueryRequest{ProductID: a})
	require.NoError(t, err)
	assert.Len(t, onlyA, 2)

	receipts, err := uc.List(ctx, dto.LedgerQueryRequest{OperationType: entity.LedgerTypeReceipt})
	require.NoError(t, err)
	assert.Len(t, receipts, 2)

	byOp, err := uc.List(ctx, dto.LedgerQueryRequest{OperationID: del.ID})
	require.NoError(t, err)
	require.Len(t, byOp, 1)
	assert.Equal(t, del.Number, byOp[0].OperationNumber)

	limited, err := uc.List(ctx, dto.LedgerQueryRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	future, err := uc.List(ctx, dto.LedgerQueryRequest{From: tomorrow})
	require.NoError(t, err)
	assert.Empty(t, future)

	_, err = uc.List(ctx, dto.LedgerQueryRequest{From: "ayer"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestParseDate(t *testing.T) {
	got, err := inventory.ParseDate("2026-03-01", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), *got)

	got, err = inventory.ParseDate("2026-03-01", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *got)

	got, err = inventory.ParseDate("2026-03-01T10:00:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	got, err = inventory.ParseDate("", false)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWarehouseStock(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", 0, 0)
	ctx := context.Background()
	rec := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{WarehouseID: f.whB, Lines: []dto.OperationLineRequest{line(p, 6)}})
	_, err := f.uc.Validate(ctx, entity.OperationKindReceipt, rec.ID, actor)
	require.NoError(t, err)

	uc := newLedgerUC(f)
	list, err := uc.WarehouseStock(ctx, f.whB)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "P", list[0].ProductName)
	assert.True(t, list[0].Quantity.Equal(dec(6)))

	empty, err := uc.WarehouseStock(ctx, f.whA)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = uc.WarehouseStock(ctx, uuid.New().String())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReconcile_DetectaDescuadre(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 3, 0)
	b := f.product(t, "B", 3, 0)
	ctx := context.Background()

	rec := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(a, 2)}})
	_, err := f.uc.Validate(ctx, entity.OperationKindReceipt, rec.ID, actor)
	require.NoError(t, err)

	uc := newLedgerUC(f)
	report, err := uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.ProductsChecked)
	assert.Empty(t, report.Mismatches)

	// Escritura directa fuera del servicio de mutación: el reporte la detecta.
	require.NoError(t, f.store.Products().UpdateStock(ctx, b, dec(9), time.Now()))
	report, err = uc.Reconcile(ctx)
	require.NoError(t, err)
	require.Len(t, report.Mismatches, 1)
	assert.Equal(t, b, report.Mismatches[0].ProductID)
	assert.True(t, report.Mismatches[0].ExpectedStock.Equal(dec(3)))
	assert.True(t, report.Mismatches[0].CurrentStock.Equal(dec(9)))
}
