package inventory

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y no queda ningún efecto; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.TxRepos) error) error
}
