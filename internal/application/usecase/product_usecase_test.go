package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

func newProductUC() (*usecase.ProductUseCase, *usecase.CategoryUseCase) {
	store := memory.NewStore()
	return usecase.NewProductUseCase(store.Products(), store.Categories()), usecase.NewCategoryUseCase(store.Categories())
}

func ptr[T any](v T) *T { return &v }

func TestProductCreate_StockInicial(t *testing.T) {
	uc, _ := newProductUC()
	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "TOR-01", Name: "Tornillo", InitialStock: decimal.NewFromInt(12), MinStockLevel: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.True(t, out.CurrentStock.Equal(decimal.NewFromInt(12)))
	assert.True(t, out.InitialStock.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, "unit", out.UnitOfMeasure)
	assert.True(t, out.IsActive)
}

func TestProductCreate_Errores(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Name: "A"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Name: "Otro"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "B", Name: "B", InitialStock: decimal.NewFromInt(-1)})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "C", Name: "C", CategoryID: "00000000-0000-0000-0000-000000000000"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductUpdate_RechazaEscrituraDeStock(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Name: "A", InitialStock: decimal.NewFromInt(5)})
	require.NoError(t, err)

	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{CurrentStock: ptr(decimal.NewFromInt(99))})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{InitialStock: ptr(decimal.NewFromInt(99))})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	out, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: ptr("Nuevo"), MinStockLevel: ptr(decimal.NewFromInt(2))})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", out.Name)
	assert.True(t, out.CurrentStock.Equal(decimal.NewFromInt(5)), "el stock no cambia")

	_, err = uc.Update(ctx, "no-existe", dto.UpdateProductRequest{Name: ptr("x")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductUpdate_SKUDuplicado(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Name: "A"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "B", Name: "B"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, b.ID, dto.UpdateProductRequest{SKU: ptr("A")})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestProductList_Filtros(t *testing.T) {
	uc, cats := newProductUC()
	ctx := context.Background()
	cat, err := cats.Create(ctx, dto.CategoryRequest{Name: "Herramientas"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "MART-1", Name: "Martillo", CategoryID: cat.ID})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "DEST-1", Name: "Destornillador", IsActive: ptr(false)})
	require.NoError(t, err)

	out, err := uc.List(ctx, dto.ProductListRequest{Search: "mart"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Martillo", out.Items[0].Name)

	out, err = uc.List(ctx, dto.ProductListRequest{CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)

	out, err = uc.List(ctx, dto.ProductListRequest{Active: ptr(true)})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)

	out, err = uc.List(ctx, dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 20, out.Page.Limit)
}

func TestProductDelete(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Name: "A"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, p.ID))
	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.True(t, errors.Is(uc.Delete(ctx, p.ID), domain.ErrNotFound))
}
