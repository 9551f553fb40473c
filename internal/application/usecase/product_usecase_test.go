package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/application/usecase"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/infrastructure/memory"
)

func newProductUseCase() *usecase.ProductUseCase {
	store := memory.NewStore()
	return usecase.NewProductUseCase(memory.NewTxRunner(store), memory.NewProductRepository(store))
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestProductCreate_SlugUnicoYPrecioInicial(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()

	p1, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "YER-1", Name: "Yerba Mate Unión", Price: dec("1500")})
	require.NoError(t, err)
	assert.Equal(t, "yerba-mate-union", p1.Slug)
	require.NotNil(t, p1.CurrentPrice)
	assert.True(t, p1.CurrentPrice.SalePrice.Equal(decimal.NewFromInt(1500)))

	p2, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "YER-2", Name: "Yerba mate unión"})
	require.NoError(t, err)
	assert.Equal(t, "yerba-mate-union-2", p2.Slug)
	assert.Nil(t, p2.CurrentPrice)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "YER-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSetPrice_SoloUnPrecioVigente(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "ACE-1", Name: "Aceite", Price: dec("100")})
	require.NoError(t, err)

	_, err = uc.SetPrice(ctx, p.ID, dto.SetPriceRequest{SalePrice: decimal.NewFromInt(120), OfferPrice: dec("110")})
	require.NoError(t, err)

	price, err := uc.CurrentPrice(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(110)), "se cobra la oferta")

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentPrice.SalePrice.Equal(decimal.NewFromInt(120)))

	_, err = uc.SetPrice(ctx, p.ID, dto.SetPriceRequest{SalePrice: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SetPrice(ctx, "no-existe", dto.SetPriceRequest{SalePrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCurrentPrice_SinPrecioEsCero(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "X", Name: "Sin precio"})
	require.NoError(t, err)

	price, err := uc.CurrentPrice(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, price.IsZero())
}

func strPtr(s string) *string { return &s }

func TestProductUpdate_CambiaCamposYConservaSlug(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "GAL-1", Name: "Galletitas", Price: dec("300")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "GAL-2", Name: "Galletitas dulces"})
	require.NoError(t, err)

	got, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr("Galletitas de agua"), Barcode: strPtr("779123")})
	require.NoError(t, err)
	assert.Equal(t, "Galletitas de agua", got.Name)
	assert.Equal(t, "779123", got.Barcode)
	assert.Equal(t, "galletitas", got.Slug)
	assert.Equal(t, "GAL-1", got.SKU)
	require.NotNil(t, got.CurrentPrice)

	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{SKU: strPtr("GAL-2")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, "no-existe", dto.UpdateProductRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDeactivate_DejaDeListarseComoActivo(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Name: "Arroz"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "B", Name: "Azúcar"})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(ctx, a.ID))
	require.NoError(t, uc.Deactivate(ctx, a.ID), "dar de baja dos veces no falla")
	assert.ErrorIs(t, uc.Deactivate(ctx, "no-existe"), domain.ErrNotFound)

	got, err := uc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	activos, err := uc.List(ctx, true, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, activos.Items, 1)
	assert.Equal(t, "Azúcar", activos.Items[0].Name)

	todos, err := uc.List(ctx, false, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, todos.Items, 2)
	assert.Equal(t, 20, todos.Page.Limit)
}

func TestProductList_PaginaPorNombre(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	for _, in := range []dto.CreateProductRequest{
		{SKU: "3", Name: "Fideos"},
		{SKU: "1", Name: "Aceite", Price: dec("900")},
		{SKU: "2", Name: "Café"},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	page, err := uc.List(ctx, false, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Aceite", page.Items[0].Name)
	require.NotNil(t, page.Items[0].CurrentPrice)
	assert.Equal(t, "Café", page.Items[1].Name)

	next, err := uc.List(ctx, false, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, next.Items, 1)
	assert.Equal(t, "Fideos", next.Items[0].Name)
}
