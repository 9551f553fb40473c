package memory

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/application/inventory"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones en memoria: toma el lock del Store, guarda una copia de los datos
// y la restaura si fn devuelve error. Dentro de fn sólo deben usarse los repos recibidos.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn de forma atómica.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := r.store.data.clone()
	tx := repository.TxRepos{
		Stock:     &StockRepo{store: r.store, inTx: true},
		Movements: &MovementRepo{store: r.store, inTx: true},
		Transfers: &TransferRepo{store: r.store, inTx: true},
		Orders:    &OrderRepo{store: r.store, inTx: true},
		Products:  &ProductRepo{store: r.store, inTx: true},
	}
	if err := fn(tx); err != nil {
		r.store.data = snapshot
		return err
	}
	return nil
}
