package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

var (
	yerba  = &entity.Product{ID: "p-1", Name: "Yerba 1kg", SKU: "YER-1"}
	azucar = &entity.Product{ID: "p-2", Name: "Azúcar 1kg", SKU: "AZU-1"}
)

func TestCart_AcumuladoEsCantidadPorPrecio(t *testing.T) {
	c := entity.NewCart()
	c.Add(yerba, decimal.NewFromInt(100))
	c.Add(yerba, decimal.NewFromInt(100))
	c.Add(yerba, decimal.NewFromInt(100))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, items[0].Accumulated.Equal(decimal.NewFromInt(300)))
}

func TestCart_CambioDePrecioRecalculaElRenglon(t *testing.T) {
	c := entity.NewCart()
	c.Add(yerba, decimal.NewFromInt(100))
	c.Add(yerba, decimal.NewFromInt(120)) // el precio cambió durante la sesión

	item := c.Items()[0]
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(120)))
	assert.True(t, item.Accumulated.Equal(decimal.NewFromInt(240)),
		"el acumulado se recalcula con el precio vigente, no como suma de precios")
}

func TestCart_RestarEliminaAlLlegarACero(t *testing.T) {
	c := entity.NewCart()
	c.Add(yerba, decimal.NewFromInt(50))
	c.Add(yerba, decimal.NewFromInt(50))

	require.True(t, c.Subtract(yerba.ID))
	assert.True(t, c.Items()[0].Accumulated.Equal(decimal.NewFromInt(50)))

	require.True(t, c.Subtract(yerba.ID))
	assert.True(t, c.IsEmpty())
	assert.False(t, c.Subtract(yerba.ID), "restar un producto ausente no hace nada")
}

func TestCart_TotalYOrden(t *testing.T) {
	c := entity.NewCart()
	c.Add(yerba, decimal.RequireFromString("10.50"))
	c.Add(azucar, decimal.RequireFromString("3.25"))
	c.Add(azucar, decimal.RequireFromString("3.25"))

	assert.True(t, c.Total().Equal(decimal.RequireFromString("17.00")))
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Azúcar 1kg", items[0].Name)

	assert.True(t, c.Remove(azucar.ID))
	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestTransferCart_AgregarYRestar(t *testing.T) {
	c := entity.NewTransferCart()
	c.Add(yerba, 2)
	c.Add(yerba, 1)
	c.Add(azucar, 0) // ignorado

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	c.Subtract(yerba.ID)
	c.Subtract(yerba.ID)
	c.Subtract(yerba.ID)
	assert.True(t, c.IsEmpty())
}

func TestActor_CanManageBranch(t *testing.T) {
	sa := entity.Actor{UserID: "u1", Role: entity.RoleSuperAdmin}
	as := entity.Actor{UserID: "u2", Role: entity.RoleBranchAdmin, BranchID: "b1"}
	sinSucursal := entity.Actor{UserID: "u3", Role: entity.RoleSeller}

	assert.True(t, sa.CanManageBranch("cualquiera"))
	assert.True(t, as.CanManageBranch("b1"))
	assert.False(t, as.CanManageBranch("b2"))
	assert.False(t, sinSucursal.CanManageBranch(""))
}

func TestPriceHistory_EffectivePrice(t *testing.T) {
	offer := decimal.NewFromInt(80)
	p := entity.PriceHistory{SalePrice: decimal.NewFromInt(100), OfferPrice: &offer}
	assert.True(t, p.EffectivePrice().Equal(offer))

	higher := decimal.NewFromInt(120)
	p.OfferPrice = &higher
	assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(100)))
}

func TestStockBalance_Defaults(t *testing.T) {
	s := entity.NewStockBalance("p-1", "b-1")
	assert.Equal(t, 0, s.Quantity)
	assert.Equal(t, entity.DefaultMinimumThreshold, s.MinimumThreshold)
	assert.Equal(t, entity.LocationAlmacen, s.Location)
	assert.True(t, s.BelowMinimum())
	assert.True(t, entity.ValidLocation(entity.LocationFrescos))
	assert.False(t, entity.ValidLocation("XXX"))
}
