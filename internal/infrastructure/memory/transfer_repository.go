package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo transferencias en memoria.
type TransferRepo struct {
	store *Store
	inTx  bool
}

// NewTransferRepository repositorio fuera de transacción.
func NewTransferRepository(store *Store) *TransferRepo {
	return &TransferRepo{store: store}
}

func (r *TransferRepo) Create(_ context.Context, t *entity.Transfer) error {
	var err error
	r.store.view(r.inTx, func(d *state) {
		if _, ok := d.transfers[t.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		cp := *t
		cp.Lines = nil
		d.transfers[t.ID] = cp
	})
	return err
}

func (r *TransferRepo) CreateLine(_ context.Context, line *entity.TransferLine) error {
	var err error
	r.store.view(r.inTx, func(d *state) {
		t, ok := d.transfers[line.TransferID]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		t.Lines = append(append([]entity.TransferLine(nil), t.Lines...), *line)
		d.transfers[t.ID] = t
	})
	return err
}

func (r *TransferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	var out *entity.Transfer
	r.store.view(r.inTx, func(d *state) {
		if t, ok := d.transfers[id]; ok {
			out = copyTransfer(t)
		}
	})
	return out, nil
}

func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, id)
}

func (r *TransferRepo) UpdateStatus(_ context.Context, t *entity.Transfer) error {
	var err error
	r.store.view(r.inTx, func(d *state) {
		cur, ok := d.transfers[t.ID]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		cur.Status = t.Status
		cur.ReceivedBy = t.ReceivedBy
		cur.ReceivedAt = t.ReceivedAt
		d.transfers[t.ID] = cur
	})
	return err
}

func (r *TransferRepo) ListIncoming(_ context.Context, branchID string) ([]*entity.Transfer, error) {
	return r.list(func(t entity.Transfer) bool {
		return t.DestinationBranchID == branchID && t.Status == entity.TransferInTransit
	}), nil
}

func (r *TransferRepo) ListOutgoing(_ context.Context, branchID string) ([]*entity.Transfer, error) {
	return r.list(func(t entity.Transfer) bool { return t.OriginBranchID == branchID }), nil
}

func (r *TransferRepo) ListReceived(_ context.Context, branchID string) ([]*entity.Transfer, error) {
	return r.list(func(t entity.Transfer) bool {
		return t.DestinationBranchID == branchID && t.Status == entity.TransferCompleted
	}), nil
}

func (r *TransferRepo) list(match func(entity.Transfer) bool) []*entity.Transfer {
	var out []*entity.Transfer
	r.store.view(r.inTx, func(d *state) {
		for _, t := range d.transfers {
			if match(t) {
				out = append(out, copyTransfer(t))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func copyTransfer(t entity.Transfer) *entity.Transfer {
	t.Lines = append([]entity.TransferLine(nil), t.Lines...)
	return &t
}
