//go:build integration

package postgres_test

// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/... -v

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/sucursales-api/internal/application/inventory"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
	"github.com/jhoicas/sucursales-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sucursales-api/pkg/config"
	"github.com/jhoicas/sucursales-api/pkg/logger"
)

type testDB struct {
	pool      *pgxpool.Pool
	branchA   string
	branchB   string
	productID string
	userID    string
}

func setupDB(t *testing.T) *testDB {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("sucursales_test"),
		tcPostgres.WithUsername("sucursales"),
		tcPostgres.WithPassword("sucursales"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 30})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.ApplySchema(ctx, pool))
	// idempotente
	require.NoError(t, postgres.ApplySchema(ctx, pool))

	db := &testDB{
		pool:      pool,
		branchA:   uuid.New().String(),
		branchB:   uuid.New().String(),
		productID: uuid.New().String(),
		userID:    uuid.New().String(),
	}
	now := time.Now()
	branches := postgres.NewBranchRepository(pool)
	require.NoError(t, branches.Create(ctx, &entity.Branch{ID: db.branchA, Name: "Centro", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, branches.Create(ctx, &entity.Branch{ID: db.branchB, Name: "Norte", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, &entity.Product{
		ID: db.productID, Name: "Yerba 1kg", Slug: "yerba-1kg", SKU: "YER-1", Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, postgres.NewUserRepository(pool).Create(ctx, &entity.User{
		ID: db.userID, Email: "caja@sucursal.com", PasswordHash: "x", Name: "Caja", Role: entity.RoleCashier,
		BranchID: db.branchA, Status: "active", CreatedAt: now, UpdatedAt: now,
	}))
	return db
}

func TestPostgres_DebitosConcurrentesNuncaDejanSaldoNegativo(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	processor := inventory.NewMovementProcessor(postgres.NewTxRunner(db.pool), postgres.NewBranchRepository(db.pool), logger.Nop())

	_, err := processor.ProcessMovement(ctx, inventory.MovementInput{
		ProductID: db.productID, BranchID: db.branchA, Quantity: 10, Kind: entity.MovementKindInbound, UserID: db.userID,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, insufficient := 0, 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := processor.ProcessMovement(ctx, inventory.MovementInput{
				ProductID: db.productID, BranchID: db.branchA, Quantity: 1, Kind: entity.MovementKindSale, UserID: db.userID,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 15, insufficient)

	s, err := postgres.NewStockRepository(db.pool).Get(ctx, db.productID, db.branchA)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 0, s.Quantity)

	movs, err := postgres.NewStockMovementRepository(db.pool).ListByProduct(ctx, db.productID, db.branchA, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 11)
	sum := 0
	for _, m := range movs {
		sum += m.Delta
	}
	assert.Equal(t, 0, sum)
	assert.Equal(t, entity.MovementKindSale, movs[0].Kind)
}

func TestPostgres_CheckDeCantidadRechazaNegativos(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(db.pool)

	err := runner.Run(ctx, func(tx repository.TxRepos) error {
		if _, err := tx.Stock.LockOrInit(ctx, db.productID, db.branchB); err != nil {
			return err
		}
		return tx.Stock.UpdateQuantity(ctx, db.productID, db.branchB, -1)
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// el rollback descarta también la fila creada por LockOrInit
	s, err := postgres.NewStockRepository(db.pool).Get(ctx, db.productID, db.branchB)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestPostgres_StockBajoYConfiguracion(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(db.pool)
	stock := postgres.NewStockRepository(db.pool)

	require.NoError(t, runner.Run(ctx, func(tx repository.TxRepos) error {
		s, err := tx.Stock.LockOrInit(ctx, db.productID, db.branchA)
		if err != nil {
			return err
		}
		assert.Equal(t, entity.DefaultMinimumThreshold, s.MinimumThreshold)
		assert.Equal(t, entity.LocationAlmacen, s.Location)
		return tx.Stock.UpdateQuantity(ctx, db.productID, db.branchA, 4)
	}))

	low, err := stock.ListLowStock(ctx, db.branchA)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, 4, low[0].Quantity)

	require.NoError(t, stock.UpdateSettings(ctx, db.productID, db.branchA, 2, entity.LocationBebidas))
	low, err = stock.ListLowStock(ctx, db.branchA)
	require.NoError(t, err)
	assert.Empty(t, low)

	s, err := stock.Get(ctx, db.productID, db.branchA)
	require.NoError(t, err)
	assert.Equal(t, entity.LocationBebidas, s.Location)
	assert.Equal(t, 4, s.Quantity)
}

func TestPostgres_TransferenciaConRenglonesYNombres(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	transfers := postgres.NewTransferRepository(db.pool)

	tr := &entity.Transfer{
		OriginBranchID: db.branchA, DestinationBranchID: db.branchB,
		CreatedBy: db.userID, CreatedAt: time.Now(), Status: entity.TransferInTransit,
	}
	require.NoError(t, transfers.Create(ctx, tr))
	require.NoError(t, transfers.CreateLine(ctx, &entity.TransferLine{TransferID: tr.ID, ProductID: db.productID, Quantity: 3}))

	incoming, err := transfers.ListIncoming(ctx, db.branchB)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	got := incoming[0]
	assert.Equal(t, "Centro", got.OriginName)
	assert.Equal(t, "Norte", got.DestinationName)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Yerba 1kg", got.Lines[0].ProductName)
	assert.Equal(t, "YER-1", got.Lines[0].SKU)

	now := time.Now()
	got.Status = entity.TransferCompleted
	got.ReceivedBy = db.userID
	got.ReceivedAt = &now
	require.NoError(t, transfers.UpdateStatus(ctx, got))

	incoming, err = transfers.ListIncoming(ctx, db.branchB)
	require.NoError(t, err)
	assert.Empty(t, incoming)
	received, err := transfers.ListReceived(ctx, db.branchB)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, db.userID, received[0].ReceivedBy)
	require.NotNil(t, received[0].ReceivedAt)

	missing, err := transfers.GetByID(ctx, uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostgres_PedidosNumeradosYColaDeCaja(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	orders := postgres.NewOrderRepository(db.pool)

	newOrder := func(channel, modality string) *entity.Order {
		o := &entity.Order{
			Customer: entity.DefaultCounterCustomer, BranchID: db.branchA, Modality: modality,
			Total: decimal.RequireFromString("1500.50"), Status: entity.OrderPending, Channel: channel,
			SellerID: db.userID, CreatedAt: time.Now(),
		}
		require.NoError(t, orders.Create(ctx, o))
		require.NoError(t, orders.CreateItem(ctx, &entity.OrderItem{
			OrderNumber: o.Number, ProductID: db.productID, Quantity: 1,
			UnitPrice: o.Total, Subtotal: o.Total,
		}))
		return o
	}
	first := newOrder(entity.ChannelCounter, entity.ModalityPickup)
	second := newOrder(entity.ChannelWeb, entity.ModalityPickup)
	newOrder(entity.ChannelWeb, entity.ModalityDelivery)
	assert.Greater(t, second.Number, first.Number)

	queue, err := orders.ListCashierQueue(ctx, db.branchA)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, second.Number, queue[0].Number)
	assert.True(t, queue[1].Total.Equal(decimal.RequireFromString("1500.50")))
	require.Len(t, queue[1].Items, 1)
	assert.Equal(t, "Yerba 1kg", queue[1].Items[0].ProductName)

	first.Status = entity.OrderDelivered
	first.PaymentMethod = entity.PaymentCash
	require.NoError(t, orders.Update(ctx, first))
	queue, err = orders.ListCashierQueue(ctx, db.branchA)
	require.NoError(t, err)
	assert.Len(t, queue, 1)
}

func TestPostgres_HistorialDePreciosUnSoloVigente(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(db.pool)

	for _, p := range []string{"100", "120"} {
		price := &entity.PriceHistory{ProductID: db.productID, SalePrice: decimal.RequireFromString(p), StartedAt: time.Now()}
		require.NoError(t, runner.Run(ctx, func(tx repository.TxRepos) error {
			return tx.Products.AddPrice(ctx, price)
		}))
	}
	cur, err := postgres.NewProductRepository(db.pool).CurrentPrice(ctx, db.productID)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.True(t, cur.SalePrice.Equal(decimal.NewFromInt(120)))

	var n int
	require.NoError(t, db.pool.QueryRow(ctx, `SELECT count(*) FROM price_history WHERE product_id = $1`, db.productID).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestPostgres_EmailDuplicado(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	err := postgres.NewUserRepository(db.pool).Create(ctx, &entity.User{
		ID: uuid.New().String(), Email: "caja@sucursal.com", PasswordHash: "x", Name: "Otra",
		Role: entity.RoleCashier, Status: "active", CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := postgres.NewUserRepository(db.pool).GetByEmail(ctx, "CAJA@sucursal.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, db.branchA, u.BranchID)
}

func TestPostgres_EditarYListarProductos(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	products := postgres.NewProductRepository(db.pool)
	now := time.Now()
	other := &entity.Product{ID: uuid.New().String(), Name: "Aceite", Slug: "aceite", SKU: "ACE-1", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(ctx, other))

	p, err := products.GetByID(ctx, db.productID)
	require.NoError(t, err)
	p.SKU = "ACE-1"
	assert.ErrorIs(t, products.Update(ctx, p), domain.ErrDuplicate)

	p.SKU = "YER-1"
	p.Active = false
	require.NoError(t, products.Update(ctx, p))
	assert.ErrorIs(t, products.Update(ctx, &entity.Product{ID: uuid.New().String(), Name: "x"}), domain.ErrNotFound)

	active, err := products.List(ctx, true, 0, 0)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Aceite", active[0].Name)

	all, err := products.List(ctx, false, 1, 1)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, db.productID, all[0].ID)
}

func TestPostgres_StockDeUnProductoPorSucursal(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	processor := inventory.NewMovementProcessor(postgres.NewTxRunner(db.pool), postgres.NewBranchRepository(db.pool), logger.Nop())
	_, err := processor.ProcessMovement(ctx, inventory.MovementInput{
		ProductID: db.productID, BranchID: db.branchB, Quantity: 7, Kind: entity.MovementKindInbound, UserID: db.userID,
	})
	require.NoError(t, err)

	rows, err := postgres.NewStockRepository(db.pool).ListByProduct(ctx, db.productID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, db.branchB, rows[0].BranchID)
	assert.Equal(t, 7, rows[0].Quantity)
}
