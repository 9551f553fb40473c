package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/sucursales-api/internal/application/ports"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

var _ ports.CartStore = (*CartStore)(nil)

// CartStore guarda los agregados de sesión serializados en JSON, igual que el adaptador Redis.
type CartStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewCartStore construye el store vacío.
func NewCartStore() *CartStore {
	return &CartStore{data: map[string][]byte{}}
}

func cartKey(kind ports.CartKind, key string) string {
	return string(kind) + ":" + key
}

func (s *CartStore) LoadCart(_ context.Context, kind ports.CartKind, key string) (*entity.Cart, error) {
	cart := entity.NewCart()
	if err := s.load(cartKey(kind, key), cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartStore) SaveCart(_ context.Context, kind ports.CartKind, key string, cart *entity.Cart) error {
	return s.save(cartKey(kind, key), cart)
}

func (s *CartStore) LoadTransferCart(_ context.Context, key string) (*entity.TransferCart, error) {
	cart := entity.NewTransferCart()
	if err := s.load(cartKey(ports.CartKindTransfer, key), cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartStore) SaveTransferCart(_ context.Context, key string, cart *entity.TransferCart) error {
	return s.save(cartKey(ports.CartKindTransfer, key), cart)
}

func (s *CartStore) Clear(_ context.Context, kind ports.CartKind, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, cartKey(kind, key))
	return nil
}

func (s *CartStore) load(k string, dst any) error {
	s.mu.Lock()
	raw, ok := s.data[k]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode cart: %w", err)
	}
	return nil
}

func (s *CartStore) save(k string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[k] = raw
	return nil
}
