//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/jhoicas/sucursales-api/internal/application/ports"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/infrastructure/redis"
)

func newStore(t *testing.T, ttl time.Duration) *redis.CartStore {
	t.Helper()
	ctx := context.Background()
	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := redis.NewClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.NewCartStore(rdb, ttl)
}

func TestCartStore_GuardaYCargaPorTipo(t *testing.T) {
	s := newStore(t, time.Hour)
	ctx := context.Background()
	p := &entity.Product{ID: "p-1", Name: "Yerba", SKU: "YER-1"}

	cart := entity.NewCart()
	cart.Add(p, decimal.NewFromInt(1500))
	cart.Add(p, decimal.NewFromInt(1500))
	require.NoError(t, s.SaveCart(ctx, ports.CartKindWeb, "u-1", cart))

	got, err := s.LoadCart(ctx, ports.CartKindWeb, "u-1")
	require.NoError(t, err)
	require.Len(t, got.Items(), 1)
	assert.Equal(t, 2, got.Items()[0].Quantity)
	assert.True(t, got.Total().Equal(decimal.NewFromInt(3000)))

	ticket, err := s.LoadCart(ctx, ports.CartKindTicket, "u-1")
	require.NoError(t, err)
	assert.True(t, ticket.IsEmpty())

	require.NoError(t, s.Clear(ctx, ports.CartKindWeb, "u-1"))
	got, err = s.LoadCart(ctx, ports.CartKindWeb, "u-1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestCartStore_CarritoDeTransferenciaVence(t *testing.T) {
	s := newStore(t, time.Second)
	ctx := context.Background()

	tc := entity.NewTransferCart()
	tc.Add(&entity.Product{ID: "p-1", Name: "Yerba"}, 4)
	require.NoError(t, s.SaveTransferCart(ctx, "u-1", tc))

	got, err := s.LoadTransferCart(ctx, "u-1")
	require.NoError(t, err)
	assert.False(t, got.IsEmpty())

	time.Sleep(1500 * time.Millisecond)
	got, err = s.LoadTransferCart(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}
