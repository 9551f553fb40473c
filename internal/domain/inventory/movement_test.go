package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/inventory"
)

func TestSignedDelta_SalidasYAjustesRestan(t *testing.T) {
	for _, k := range []entity.MovementKind{
		entity.MovementKindSale, entity.MovementKindWebSale, entity.MovementKindAdjustment,
	} {
		d, err := inventory.SignedDelta(k, "", 4)
		require.NoError(t, err)
		assert.Equal(t, -4, d, "tipo %s debe restar", k)
	}
}

func TestSignedDelta_EntradaSuma(t *testing.T) {
	d, err := inventory.SignedDelta(entity.MovementKindInbound, "", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, d)
}

func TestSignedDelta_TransferenciaSegunDireccion(t *testing.T) {
	out, err := inventory.SignedDelta(entity.MovementKindTransfer, entity.DirectionOut, 3)
	require.NoError(t, err)
	assert.Equal(t, -3, out)

	in, err := inventory.SignedDelta(entity.MovementKindTransfer, entity.DirectionIn, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, in)

	_, err = inventory.SignedDelta(entity.MovementKindTransfer, "", 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "TRA sin dirección es inválido")
}

func TestSignedDelta_CantidadNoPositiva(t *testing.T) {
	_, err := inventory.SignedDelta(entity.MovementKindInbound, "", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = inventory.SignedDelta(entity.MovementKindSale, "", -2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignedDelta_TipoDesconocido(t *testing.T) {
	_, err := inventory.SignedDelta("XYZ", "", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_RechazaSaldoNegativo(t *testing.T) {
	next, err := inventory.Apply(5, -10)
	require.Error(t, err)
	assert.Equal(t, 5, next, "el saldo no cambia si se rechaza")
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var se *domain.StockInsufficientError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 10, se.Requested)
	assert.Equal(t, 5, se.Current)
}

func TestApply_PermiteLlegarACero(t *testing.T) {
	next, err := inventory.Apply(5, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, next)
}
