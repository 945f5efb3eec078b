package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const actor = "user-1"

type fixture struct {
	store *memory.Store
	uc    *inventory.OperationUseCase
	pub   *recordingPublisher
	whA   string
	whB   string
}

type recordingPublisher struct {
	mu      sync.Mutex
	entries []*entity.StockLedgerEntry
	fail    bool
}

func (p *recordingPublisher) PublishLedgerEntries(_ context.Context, _ *entity.Operation, entries []*entity.StockLedgerEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker caído")
	}
	p.entries = append(p.entries, entries...)
	return nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	f := &fixture{
		store: store,
		pub:   pub,
		uc: inventory.NewOperationUseCase(inventory.OperationDeps{
			TxRunner:   store,
			Operations: store.Operations(),
			Products:   store.Products(),
			Warehouses: store.Warehouses(),
			Partners:   store.Partners(),
			Publisher:  pub,
		}),
	}
	f.whA = f.warehouse(t, "Central")
	f.whB = f.warehouse(t, "Norte")
	return f
}

func (f *fixture) warehouse(t *testing.T, name string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, f.store.Warehouses().Create(context.Background(), &entity.Warehouse{
		ID: id, Name: name, IsActive: true,
	}))
	return id
}

func (f *fixture) product(t *testing.T, name string, stock, min int64) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{
		ID:            id,
		Name:          name,
		SKU:           "SKU-" + name,
		UnitOfMeasure: "unit",
		InitialStock:  decimal.NewFromInt(stock),
		CurrentStock:  decimal.NewFromInt(stock),
		MinStockLevel: decimal.NewFromInt(min),
		IsActive:      true,
		CreatedAt:     time.Now(),
	}))
	return id
}

func (f *fixture) stockOf(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (f *fixture) ledger(t *testing.T, productID string) []*entity.StockLedgerEntry {
	t.Helper()
	list, err := f.store.Ledger().List(context.Background(), repository.LedgerFilter{ProductID: productID})
	require.NoError(t, err)
	return list
}

func line(productID string, qty int64) dto.OperationLineRequest {
	return dto.OperationLineRequest{ProductID: productID, Quantity: decimal.NewFromInt(qty)}
}

func (f *fixture) create(t *testing.T, kind string, in dto.CreateOperationRequest) *dto.OperationResponse {
	t.Helper()
	if in.WarehouseID == "" && kind != entity.OperationKindTransfer {
		in.WarehouseID = f.whA
	}
	out, err := f.uc.Create(context.Background(), kind, actor, in)
	require.NoError(t, err)
	require.Equal(t, entity.OperationStatusDraft, out.Status)
	return out
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Recepciones y entregas
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_RecepcionDosLineas(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 0, 0)
	b := f.product(t, "B", 2, 0)

	op := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{
		Lines: []dto.OperationLineRequest{line(a, 5), line(b, 3)},
	})
	assert.True(t, f.stockOf(t, a).IsZero(), "crear el draft no mueve stock")

	out, err := f.uc.Validate(context.Background(), entity.OperationKindReceipt, op.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, entity.OperationStatusDone, out.Status)
	assert.Equal(t, actor, out.ValidatedBy)
	require.NotNil(t, out.ValidatedAt)

	la := f.ledger(t, a)
	require.Len(t, la, 1)
	assert.True(t, la[0].QuantityChange.Equal(dec(5)))
	assert.True(t, la[0].StockAfter.Equal(la[0].StockBefore.Add(la[0].QuantityChange)))
	assert.Equal(t, entity.LedgerTypeReceipt, la[0].OperationType)
	assert.Equal(t, op.Number, la[0].OperationNumber)

	lb := f.ledger(t, b)
	require.Len(t, lb, 1)
	assert.True(t, lb[0].QuantityChange.Equal(dec(3)))
	assert.True(t, lb[0].StockBefore.Equal(dec(2)))
	assert.True(t, lb[0].StockAfter.Equal(dec(5)))

	assert.Len(t, f.pub.entries, 2, "se publican las entradas tras el commit")
}

func TestValidate_EntregaYLuegoStockInsuficiente(t *testing.T) {
	f := newFixture(t)
	x := f.product(t, "X", 10, 5)

	first := f.create(t, entity.OperationKindDelivery, dto.CreateOperationRequest{
		Lines: []dto.OperationLineRequest{line(x, 4)},
	})
	_, err := f.uc.Validate(context.Background(), entity.OperationKindDelivery, first.ID, actor)
	require.NoError(t, err)
	assert.True(t, f.stockOf(t, x).Equal(dec(6)))

	entries := f.ledger(t, x)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].QuantityChange.Equal(dec(-4)))
	assert.True(t, entries[0].StockBefore.Equal(dec(10)))
	assert.True(t, entries[0].StockAfter.Equal(dec(6)))

	second := f.create(t, entity.OperationKindDelivery, dto.CreateOperationRequest{
		Lines: []dto.OperationLineRequest{line(x, 10)},
	})
	_, err = f.uc.Validate(context.Background(), entity.OperationKindDelivery, second.ID, actor)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.Line)
	assert.Equal(t, x, se.ProductID)

	assert.True(t, f.stockOf(t, x).Equal(dec(6)), "el stock no cambia")
	assert.Len(t, f.ledger(t, x), 1, "el kardex no cambia")

	got, err := f.uc.Get(context.Background(), entity.OperationKindDelivery, second.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OperationStatusDraft, got.Status, "la operación sigue en draft")
}

func TestValidate_RollbackEntreLineas(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 0)
	b := f.product(t, "B", 1, 0)

	op := f.create(t, entity.OperationKindDelivery, dto.CreateOperationRequest{
		Lines: []dto.OperationLineRequest{line(a, 3), line(b, 5)},
	})
	_, err := f.uc.Validate(context.Background(), entity.OperationKindDelivery, op.ID, actor)
	require.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Line, "falla la segunda línea")

	assert.True(t, f.stockOf(t, a).Equal(dec(10)), "la primera línea se revierte")
	assert.Empty(t, f.ledger(t, a))
	assert.Empty(t, f.ledger(t, b))
	assert.Empty(t, f.pub.entries, "nada se publica si la transacción falla")
}

func TestValidate_OperacionDoneRetornaInvalidState(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 0, 0)
	op := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{
		Lines: []dto.OperationLineRequest{line(a, 2)},
	})
	_, err := f.uc.Validate(context.Background(), entity.OperationKindReceipt, op.ID, actor)
	require.NoError(t, err)

	_, err = f.uc.Validate(context.Background(), entity.OperationKindReceipt, op.ID, actor)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Len(t, f.ledger(t, a), 1, "no hay nuevas entradas")
	assert.True(t, f.stockOf(t, a).Equal(dec(2)))
}

func TestValidate_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Validate(context.Background(), entity.OperationKindReceipt, uuid.New().String(), actor)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestValidate_OtroTipoNoEncuentraLaOperacion(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 0, 0)
	op := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{
		Lines: []dto.OperationLineRequest{line(a, 2)},
	})
	_, err := f.uc.Validate(context.Background(), entity.OperationKindDelivery, op.ID, actor)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestValidate_ProductoEliminadoFallaConProductNotFound(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 5, 0)
	op := f.create(t, entity.OperationKindDelivery, dto.CreateOperationRequest{
		Lines: []dto.OperationLineRequest{line(a, 1)},
	})
	require.NoError(t, f.store.Products().Delete(context.Background(), a))

	_, err := f.uc.Validate(context.Background(), entity.OperationKindDelivery, op.ID, actor)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes y traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_AjusteCapturaStockAlValidar(t *testing.T) {
	f := newFixture(t)
	y := f.product(t, "Y", 20, 0)
	nq := dec(15)

	op := f.create(t, entity.OperationKindAdjustment, dto.CreateOperationRequest{
		Reason: "conteo físico",
		Lines:  []dto.OperationLineRequest{{ProductID: y, NewQuantity: &nq}},
	})

	out, err := f.uc.Validate(context.Background(), entity.OperationKindAdjustment, op.ID, actor)
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	require.NotNil(t, out.Lines[0].OldQuantity)
	assert.True(t, out.Lines[0].OldQuantity.Equal(dec(20)))
	assert.True(t, out.Lines[0].Difference.Equal(dec(-5)))

	entries := f.ledger(t, y)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].QuantityChange.Equal(dec(-5)))
	assert.True(t, entries[0].StockBefore.Equal(dec(20)))
	assert.True(t, entries[0].StockAfter.Equal(dec(15)))
	assert.True(t, f.stockOf(t, y).Equal(dec(15)))
}

func TestValidate_AjusteOldQuantityNoSeFijaEnDraft(t *testing.T) {
	f := newFixture(t)
	y := f.product(t, "Y", 20, 0)
	nq := dec(15)
	adj := f.create(t, entity.OperationKindAdjustment, dto.CreateOperationRequest{
		Lines: []dto.OperationLineRequest{{ProductID: y, NewQuantity: &nq}},
	})
	assert.Nil(t, adj.Lines[0].OldQuantity)

	// Una recepción posterior cambia el stock antes de validar el ajuste.
	rec := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{
		Lines: []dto.OperationLineRequest{line(y, 10)},
	})
	_, err := f.uc.Validate(context.Background(), entity.OperationKindReceipt, rec.ID, actor)
	require.NoError(t, err)

	out, err := f.uc.Validate(context.Background(), entity.OperationKindAdjustment, adj.ID, actor)
	require.NoError(t, err)
	assert.True(t, out.Lines[0].OldQuantity.Equal(dec(30)))
	assert.True(t, out.Lines[0].Difference.Equal(dec(-15)))
	assert.True(t, f.stockOf(t, y).Equal(dec(15)))
}

func TestValidate_TrasladoDosEntradas(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", 8, 0)

	op := f.create(t, entity.OperationKindTransfer, dto.CreateOperationRequest{
		FromWarehouseID: f.whA,
		ToWarehouseID:   f.whB,
		Lines:           []dto.OperationLineRequest{line(p, 3)},
	})
	_, err := f.uc.Validate(context.Background(), entity.OperationKindTransfer, op.ID, actor)
	require.NoError(t, err)

	entries := f.ledger(t, p) // más reciente primero
	require.Len(t, entries, 2)
	in, out := entries[0], entries[1]
	assert.Equal(t, entity.LedgerTypeTransferOut, out.OperationType)
	assert.Equal(t, f.whA, out.WarehouseID)
	assert.True(t, out.StockBefore.Equal(dec(8)))
	assert.True(t, out.StockAfter.Equal(dec(5)))

	assert.Equal(t, entity.LedgerTypeTransferIn, in.OperationType)
	assert.Equal(t, f.whB, in.WarehouseID)
	assert.True(t, in.StockBefore.Equal(dec(5)))
	assert.True(t, in.StockAfter.Equal(dec(8)))

	assert.True(t, f.stockOf(t, p).Equal(dec(8)), "el total global no cambia")
	assert.Less(t, out.Seq, in.Seq, "transfer_out se escribe antes que transfer_in")

	sa, err := f.store.Stock().Get(context.Background(), p, f.whA)
	require.NoError(t, err)
	sb, err := f.store.Stock().Get(context.Background(), p, f.whB)
	require.NoError(t, err)
	assert.True(t, sa.Quantity.Equal(dec(-3)))
	assert.True(t, sb.Quantity.Equal(dec(3)))
}

func TestValidate_TrasladoSinStockFalla(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", 2, 0)
	op := f.create(t, entity.OperationKindTransfer, dto.CreateOperationRequest{
		FromWarehouseID: f.whA,
		ToWarehouseID:   f.whB,
		Lines:           []dto.OperationLineRequest{line(p, 3)},
	})
	_, err := f.uc.Validate(context.Background(), entity.OperationKindTransfer, op.ID, actor)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Empty(t, f.ledger(t, p))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariantes
// ──────────────────────────────────────────────────────────────────────────────

func TestInvariante_StockIgualInicialMasKardex(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", 7, 0)
	nq := dec(4)

	steps := []struct {
		kind string
		in   dto.CreateOperationRequest
	}{
		{entity.OperationKindReceipt, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(p, 5)}}},
		{entity.OperationKindDelivery, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(p, 9)}}},
		{entity.OperationKindTransfer, dto.CreateOperationRequest{FromWarehouseID: f.whA, ToWarehouseID: f.whB, Lines: []dto.OperationLineRequest{line(p, 2)}}},
		{entity.OperationKindAdjustment, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{{ProductID: p, NewQuantity: &nq}}}},
		{entity.OperationKindDelivery, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(p, 100)}}},
	}
	for _, s := range steps {
		op := f.create(t, s.kind, s.in)
		_, _ = f.uc.Validate(context.Background(), s.kind, op.ID, actor)
	}

	sums, err := f.store.Ledger().SumByProduct(context.Background())
	require.NoError(t, err)
	assert.True(t, f.stockOf(t, p).Equal(dec(7).Add(sums[p])))
	assert.True(t, f.stockOf(t, p).Equal(dec(4)))

	// stock_before de cada entrada = stock_after de la anterior
	entries := f.ledger(t, p)
	for i := 0; i < len(entries)-1; i++ {
		assert.True(t, entries[i].StockBefore.Equal(entries[i+1].StockAfter))
	}
}

func TestConcurrencia_DosEntregasSoloUnaGana(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", 10, 0)

	a := f.create(t, entity.OperationKindDelivery, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(p, 7)}})
	b := f.create(t, entity.OperationKindDelivery, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(p, 6)}})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = f.uc.Validate(context.Background(), entity.OperationKindDelivery, id, actor)
		}(i, id)
	}
	wg.Wait()

	ok, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.False(t, f.stockOf(t, p).IsNegative())
}

func TestConcurrencia_MismaOperacionUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", 0, 0)
	op := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(p, 1)}})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Validate(context.Background(), entity.OperationKindReceipt, op.ID, actor)
		}(i)
	}
	wg.Wait()

	nilCount, invalid := 0, 0
	for _, err := range errs {
		if err == nil {
			nilCount++
		} else if errors.Is(err, domain.ErrInvalidState) {
			invalid++
		}
	}
	assert.Equal(t, 1, nilCount)
	assert.Equal(t, 1, invalid)
	assert.True(t, f.stockOf(t, p).Equal(dec(1)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", 0, 0)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, entity.OperationKindReceipt, actor, dto.CreateOperationRequest{WarehouseID: f.whA})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "sin líneas")

	_, err = f.uc.Create(ctx, entity.OperationKindReceipt, actor, dto.CreateOperationRequest{
		WarehouseID: f.whA, Lines: []dto.OperationLineRequest{line(p, 0)},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "cantidad cero")

	_, err = f.uc.Create(ctx, entity.OperationKindReceipt, actor, dto.CreateOperationRequest{
		Lines: []dto.OperationLineRequest{line(p, 1)},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "sin bodega")

	_, err = f.uc.Create(ctx, entity.OperationKindTransfer, actor, dto.CreateOperationRequest{
		FromWarehouseID: f.whA, ToWarehouseID: f.whA, Lines: []dto.OperationLineRequest{line(p, 1)},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "origen igual a destino")

	_, err = f.uc.Create(ctx, entity.OperationKindReceipt, actor, dto.CreateOperationRequest{
		WarehouseID: f.whA, Lines: []dto.OperationLineRequest{line(uuid.New().String(), 1)},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "producto inexistente")

	_, err = f.uc.Create(ctx, entity.OperationKindAdjustment, actor, dto.CreateOperationRequest{
		WarehouseID: f.whA, Lines: []dto.OperationLineRequest{line(p, 1)},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "ajuste sin new_quantity")
}

func TestCreate_NumeroGeneradoYDuplicado(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", 0, 0)

	auto := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(p, 1)}})
	assert.Regexp(t, `^REC-\d{8}-[0-9A-F]{8}$`, auto.Number)

	f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{Number: "REC-001", Lines: []dto.OperationLineRequest{line(p, 1)}})
	_, err := f.uc.Create(context.Background(), entity.OperationKindReceipt, actor, dto.CreateOperationRequest{
		Number: "REC-001", WarehouseID: f.whA, Lines: []dto.OperationLineRequest{line(p, 1)},
	})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	// El mismo número en otro tipo no choca.
	f.create(t, entity.OperationKindDelivery, dto.CreateOperationRequest{Number: "REC-001", Lines: []dto.OperationLineRequest{line(p, 1)}})
}

func TestCreate_ContraparteDebeCoincidirConElTipo(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", 0, 0)
	customer := &entity.Partner{ID: uuid.New().String(), Type: entity.PartnerTypeCustomer, Name: "Cliente"}
	require.NoError(t, f.store.Partners().Create(context.Background(), customer))

	_, err := f.uc.Create(context.Background(), entity.OperationKindReceipt, actor, dto.CreateOperationRequest{
		WarehouseID: f.whA, PartnerID: customer.ID, Lines: []dto.OperationLineRequest{line(p, 1)},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	out := f.create(t, entity.OperationKindDelivery, dto.CreateOperationRequest{
		PartnerID: customer.ID, Lines: []dto.OperationLineRequest{line(p, 1)},
	})
	assert.Equal(t, "Cliente", out.PartnerName)
	assert.Equal(t, "Central", out.WarehouseName)
	assert.Equal(t, "P", out.Lines[0].ProductName)
}

func TestDelete_SoloEnDraft(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", 0, 0)
	ctx := context.Background()

	draft := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(p, 1)}})
	require.NoError(t, f.uc.Delete(ctx, entity.OperationKindReceipt, draft.ID))
	got, err := f.uc.Get(ctx, entity.OperationKindReceipt, draft.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	done := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(p, 1)}})
	_, err = f.uc.Validate(ctx, entity.OperationKindReceipt, done.ID, actor)
	require.NoError(t, err)
	assert.True(t, errors.Is(f.uc.Delete(ctx, entity.OperationKindReceipt, done.ID), domain.ErrInvalidState))

	assert.True(t, errors.Is(f.uc.Delete(ctx, entity.OperationKindReceipt, uuid.New().String()), domain.ErrNotFound))
}

func TestValidate_FalloDePublicacionNoRevierte(t *testing.T) {
	f := newFixture(t)
	f.pub.fail = true
	p := f.product(t, "P", 0, 0)
	op := f.create(t, entity.OperationKindReceipt, dto.CreateOperationRequest{Lines: []dto.OperationLineRequest{line(p, 4)}})

	out, err := f.uc.Validate(context.Background(), entity.OperationKindReceipt, op.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, entity.OperationStatusDone, out.Status)
	assert.True(t, f.stockOf(t, p).Equal(dec(4)))
}
