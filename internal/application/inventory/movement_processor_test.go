package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/application/inventory"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/infrastructure/memory"
	"github.com/jhoicas/sucursales-api/pkg/logger"
)

const (
	productID = "prod-yerba"
	branchX   = "suc-centro"
	branchY   = "suc-norte"
)

type fixture struct {
	store     *memory.Store
	processor *inventory.MovementProcessor
	query     *inventory.BalanceQuery
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	branches := memory.NewBranchRepository(store)
	require.NoError(t, branches.Create(ctx, &entity.Branch{ID: branchX, Name: "Centro"}))
	require.NoError(t, branches.Create(ctx, &entity.Branch{ID: branchY, Name: "Norte"}))
	products := memory.NewProductRepository(store)
	require.NoError(t, products.Create(ctx, &entity.Product{ID: productID, Name: "Yerba 1kg", Slug: "yerba-1kg", SKU: "YER-1"}))

	tx := memory.NewTxRunner(store)
	return &fixture{
		store:     store,
		processor: inventory.NewMovementProcessor(tx, branches, logger.Nop()),
		query: inventory.NewBalanceQuery(tx,
			memory.NewStockRepository(store),
			memory.NewMovementRepository(store),
			products, branches),
	}
}

func (f *fixture) apply(t *testing.T, kind entity.MovementKind, qty int) *entity.StockMovement {
	t.Helper()
	m, err := f.processor.ProcessMovement(context.Background(), inventory.MovementInput{
		ProductID: productID, BranchID: branchX, Quantity: qty, Kind: kind, UserID: "u-1",
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) balance(t *testing.T, branchID string) int {
	t.Helper()
	b, err := f.query.GetBalance(context.Background(), productID, branchID)
	require.NoError(t, err)
	return b
}

func TestProcessMovement_DerivaElSignoDelTipo(t *testing.T) {
	f := newFixture(t)
	f.apply(t, entity.MovementKindInbound, 3)

	m := f.apply(t, entity.MovementKindInbound, 7)
	assert.Equal(t, 7, m.Delta)
	assert.Equal(t, 3, m.BalanceBefore)
	assert.Equal(t, 10, m.BalanceAfter)
	assert.Equal(t, 10, f.balance(t, branchX))

	m = f.apply(t, entity.MovementKindSale, 2)
	assert.Equal(t, -2, m.Delta)
	assert.Equal(t, 8, f.balance(t, branchX))
}

func TestProcessMovement_SaldoIgualASumaDeDeltas(t *testing.T) {
	f := newFixture(t)
	seq := []struct {
		kind entity.MovementKind
		qty  int
	}{
		{entity.MovementKindInbound, 20},
		{entity.MovementKindSale, 4},
		{entity.MovementKindWebSale, 3},
		{entity.MovementKindAdjustment, 1},
		{entity.MovementKindInbound, 5},
		{entity.MovementKindSale, 30}, // rechazado
	}
	for _, s := range seq {
		_, _ = f.processor.ProcessMovement(context.Background(), inventory.MovementInput{
			ProductID: productID, BranchID: branchX, Quantity: s.qty, Kind: s.kind,
		})
	}

	movs, err := f.query.ListMovements(context.Background(), productID, branchX, dto.PageRequest{Limit: 100})
	require.NoError(t, err)
	require.Len(t, movs, 5)
	sum := 0
	for _, m := range movs {
		sum += m.Delta
	}
	assert.Equal(t, 17, sum)
	assert.Equal(t, sum, f.balance(t, branchX))
	assert.Equal(t, string(entity.MovementKindInbound), movs[0].Kind, "el más reciente primero")
}

func TestProcessMovement_RechazaSaldoNegativoSinEfectos(t *testing.T) {
	f := newFixture(t)
	f.apply(t, entity.MovementKindInbound, 5)

	_, err := f.processor.ProcessMovement(context.Background(), inventory.MovementInput{
		ProductID: productID, BranchID: branchX, Quantity: 10, Kind: entity.MovementKindSale,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insufficient *domain.StockInsufficientError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, productID, insufficient.ProductID)
	assert.Equal(t, "Yerba 1kg", insufficient.ProductName)
	assert.Equal(t, 10, insufficient.Requested)
	assert.Equal(t, 5, insufficient.Current)
	assert.Contains(t, err.Error(), "Actual: 5, Solicitado: 10")

	assert.Equal(t, 5, f.balance(t, branchX))
	movs, err := f.query.ListMovements(context.Background(), productID, branchX, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, movs, 1, "no se registra el movimiento rechazado")
}

func TestProcessMovement_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cases := []inventory.MovementInput{
		{ProductID: productID, BranchID: branchX, Quantity: 0, Kind: entity.MovementKindInbound},
		{ProductID: productID, BranchID: branchX, Quantity: -3, Kind: entity.MovementKindInbound},
		{ProductID: productID, BranchID: branchX, Quantity: 1, Kind: "XXX"},
		{ProductID: productID, BranchID: branchX, Quantity: 1, Kind: entity.MovementKindTransfer},
		{ProductID: "", BranchID: branchX, Quantity: 1, Kind: entity.MovementKindInbound},
	}
	for _, in := range cases {
		_, err := f.processor.ProcessMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestProcessMovement_SucursalOProductoInexistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.processor.ProcessMovement(ctx, inventory.MovementInput{
		ProductID: productID, BranchID: "no-existe", Quantity: 1, Kind: entity.MovementKindInbound,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.processor.ProcessMovement(ctx, inventory.MovementInput{
		ProductID: "no-existe", BranchID: branchX, Quantity: 1, Kind: entity.MovementKindInbound,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProcessMovement_ConcurrenciaNoSobrevende(t *testing.T) {
	f := newFixture(t)
	f.apply(t, entity.MovementKindInbound, 10)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, short int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.processor.ProcessMovement(context.Background(), inventory.MovementInput{
				ProductID: productID, BranchID: branchX, Quantity: 1, Kind: entity.MovementKindSale,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				short++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 15, short)
	assert.Equal(t, 0, f.balance(t, branchX))
}

func TestRegisterMovementFromRequest_ControlaSucursal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := dto.RegisterMovementRequest{ProductID: productID, BranchID: branchX, Kind: "ENT", Quantity: 4}

	_, err := f.processor.RegisterMovementFromRequest(ctx, entity.Actor{UserID: "u", Role: entity.RoleBranchAdmin, BranchID: branchY}, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.processor.RegisterMovementFromRequest(ctx, entity.Actor{UserID: "u", Role: entity.RoleBranchAdmin, BranchID: branchX}, req)
	require.NoError(t, err)
	assert.Equal(t, 4, out.BalanceAfter)

	req.Kind = "TRA"
	_, err = f.processor.RegisterMovementFromRequest(ctx, entity.Actor{Role: entity.RoleSuperAdmin}, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
