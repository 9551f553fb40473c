package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo sucursales en memoria.
type BranchRepo struct {
	store *Store
}

// NewBranchRepository construye el repositorio.
func NewBranchRepository(store *Store) *BranchRepo {
	return &BranchRepo{store: store}
}

func (r *BranchRepo) Create(_ context.Context, b *entity.Branch) error {
	var err error
	r.store.view(false, func(d *state) {
		if _, ok := d.branches[b.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		d.branches[b.ID] = *b
	})
	return err
}

func (r *BranchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	var out *entity.Branch
	r.store.view(false, func(d *state) {
		if b, ok := d.branches[id]; ok {
			out = &b
		}
	})
	return out, nil
}

func (r *BranchRepo) List(_ context.Context) ([]*entity.Branch, error) {
	var out []*entity.Branch
	r.store.view(false, func(d *state) {
		for _, b := range d.branches {
			b := b
			out = append(out, &b)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
