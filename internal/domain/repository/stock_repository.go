package repository

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar el saldo por sucursal+producto.
// Las mutaciones se hacen dentro de transacciones (ver TxRepos).
type StockRepository interface {
	// Get devuelve el saldo o nil si la fila no existe. Nunca crea filas.
	Get(ctx context.Context, productID, branchID string) (*entity.StockBalance, error)
	// LockOrInit crea la fila con cantidad 0 si no existe y la devuelve bloqueada
	// hasta el fin de la transacción (SELECT FOR UPDATE).
	LockOrInit(ctx context.Context, productID, branchID string) (*entity.StockBalance, error)
	UpdateQuantity(ctx context.Context, productID, branchID string, quantity int) error
	// UpdateSettings cambia umbral mínimo y ubicación; nunca la cantidad.
	UpdateSettings(ctx context.Context, productID, branchID string, minimum int, location string) error
	ListLowStock(ctx context.Context, branchID string) ([]*entity.StockBalance, error)
	// ListByProduct saldos existentes del producto en todas las sucursales.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error)
}
