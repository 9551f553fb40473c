package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/sucursales-api/internal/application/ports"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

var _ ports.CartStore = (*CartStore)(nil)

const keyPrefix = "sucursales:"

// CartStore guarda carritos, tickets y carritos de transferencia como JSON con vencimiento.
// Cada Save renueva el TTL.
type CartStore struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewCartStore ttl <= 0 guarda sin vencimiento.
func NewCartStore(rdb *goredis.Client, ttl time.Duration) *CartStore {
	return &CartStore{rdb: rdb, ttl: ttl}
}

func cartKey(kind ports.CartKind, key string) string {
	return keyPrefix + string(kind) + ":" + key
}

func (s *CartStore) LoadCart(ctx context.Context, kind ports.CartKind, key string) (*entity.Cart, error) {
	cart := entity.NewCart()
	if err := s.load(ctx, cartKey(kind, key), cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartStore) SaveCart(ctx context.Context, kind ports.CartKind, key string, cart *entity.Cart) error {
	return s.save(ctx, cartKey(kind, key), cart)
}

func (s *CartStore) LoadTransferCart(ctx context.Context, key string) (*entity.TransferCart, error) {
	cart := entity.NewTransferCart()
	if err := s.load(ctx, cartKey(ports.CartKindTransfer, key), cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartStore) SaveTransferCart(ctx context.Context, key string, cart *entity.TransferCart) error {
	return s.save(ctx, cartKey(ports.CartKindTransfer, key), cart)
}

func (s *CartStore) Clear(ctx context.Context, kind ports.CartKind, key string) error {
	if err := s.rdb.Del(ctx, cartKey(kind, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *CartStore) load(ctx context.Context, k string, dst any) error {
	raw, err := s.rdb.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil
		}
		return fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode cart: %w", err)
	}
	return nil
}

func (s *CartStore) save(ctx context.Context, k string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.rdb.Set(ctx, k, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
