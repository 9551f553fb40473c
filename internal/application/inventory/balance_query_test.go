package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/infrastructure/memory"
)

func TestGetBalance_ParNuncaTocadoDevuelveCeroSinCrearFila(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stock := memory.NewStockRepository(f.store)

	assert.Equal(t, 0, f.balance(t, branchY))
	row, err := stock.Get(ctx, productID, branchY)
	require.NoError(t, err)
	assert.Nil(t, row)

	f.apply(t, entity.MovementKindInbound, 6)
	row, err = stock.Get(ctx, productID, branchX)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 6, row.Quantity)
	assert.Equal(t, entity.DefaultMinimumThreshold, row.MinimumThreshold)
	assert.Equal(t, entity.LocationAlmacen, row.Location)
}

func TestHasSufficient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.apply(t, entity.MovementKindInbound, 3)

	ok, err := f.query.HasSufficient(ctx, productID, branchX, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.query.HasSufficient(ctx, productID, branchX, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.query.HasSufficient(ctx, productID, branchY, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.query.HasSufficient(ctx, productID, branchX, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListByProduct_TodasLasSucursalesConCeroPorDefecto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.apply(t, entity.MovementKindInbound, 8)

	got, err := f.query.ListByProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, "Yerba 1kg", got.ProductName)
	assert.Equal(t, 8, got.Total)
	require.Len(t, got.Branches, 2)
	assert.Equal(t, branchX, got.Branches[0].BranchID)
	assert.Equal(t, "Centro", got.Branches[0].BranchName)
	assert.Equal(t, 8, got.Branches[0].Quantity)
	assert.Equal(t, branchY, got.Branches[1].BranchID)
	assert.Equal(t, 0, got.Branches[1].Quantity)
	assert.Equal(t, entity.LocationAlmacen, got.Branches[1].Location)

	row, err := memory.NewStockRepository(f.store).Get(ctx, productID, branchY)
	require.NoError(t, err)
	assert.Nil(t, row, "la consulta no crea filas")

	_, err = f.query.ListByProduct(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.query.ListByProduct(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListLowStock(t *testing.T) {
	f := newFixture(t)
	f.apply(t, entity.MovementKindInbound, 2)

	low, err := f.query.ListLowStock(context.Background(), branchX)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Yerba 1kg", low[0].ProductName)
	assert.Equal(t, 3, low[0].Missing)
	assert.True(t, low[0].BelowMinimum)

	f.apply(t, entity.MovementKindInbound, 10)
	low, err = f.query.ListLowStock(context.Background(), branchX)
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestUpdateSettings_NoCambiaCantidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.apply(t, entity.MovementKindInbound, 8)
	admin := entity.Actor{UserID: "a", Role: entity.RoleBranchAdmin, BranchID: branchX}

	out, err := f.query.UpdateSettings(ctx, admin, dto.UpdateStockSettingsRequest{
		ProductID: productID, BranchID: branchX, MinimumThreshold: 10, Location: entity.LocationBebidas,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, out.Quantity)
	assert.True(t, out.BelowMinimum)

	got, err := f.query.GetStock(ctx, productID, branchX)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)
	assert.Equal(t, 10, got.MinimumThreshold)
	assert.Equal(t, entity.LocationBebidas, got.Location)

	_, err = f.query.UpdateSettings(ctx, admin, dto.UpdateStockSettingsRequest{
		ProductID: productID, BranchID: branchY, MinimumThreshold: 1, Location: entity.LocationAlmacen,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.query.UpdateSettings(ctx, admin, dto.UpdateStockSettingsRequest{
		ProductID: productID, BranchID: branchX, MinimumThreshold: 1, Location: "XYZ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
