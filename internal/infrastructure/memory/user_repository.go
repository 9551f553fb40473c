package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria; el email es único sin distinguir mayúsculas.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el repositorio.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	var err error
	r.store.view(false, func(d *state) {
		for _, cur := range d.users {
			if strings.EqualFold(cur.Email, u.Email) {
				err = domain.ErrEmailAlreadyExists
				return
			}
		}
		d.users[u.ID] = *u
	})
	return err
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.store.view(false, func(d *state) {
		if u, ok := d.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.store.view(false, func(d *state) {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) ListByBranch(_ context.Context, branchID string) ([]*entity.User, error) {
	var out []*entity.User
	r.store.view(false, func(d *state) {
		for _, u := range d.users {
			if u.BranchID == branchID {
				u := u
				out = append(out, &u)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}
