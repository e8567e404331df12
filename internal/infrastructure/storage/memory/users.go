package memory

import (
	"context"
	"sort"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/core/id"
	"pharmastock/internal/domain/auth"
)

// UserRepo implements auth.UserRepository over the store.
type UserRepo struct {
	store *Store
}

// NewUserRepo creates a user repository.
func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

var _ auth.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *auth.User) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return apperror.NewDuplicate("user", "email", u.Email)
		}
	}
	cp := *u
	r.store.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	u, ok := r.store.users[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID.String())
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	for _, u := range r.store.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	for _, u := range r.store.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) Update(ctx context.Context, u *auth.User) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	current, ok := r.store.users[u.ID]
	if !ok {
		return apperror.NewNotFound("user", u.ID.String())
	}
	if current.Version != u.Version {
		return apperror.NewWriteConflict("user", u.ID.String())
	}

	cp := *u
	cp.Version = u.Version + 1
	r.store.users[u.ID] = &cp
	u.SetVersion(cp.Version)
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, userID id.ID) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.users[userID]; !ok {
		return apperror.NewNotFound("user", userID.String())
	}
	for _, s := range r.store.sales {
		if s.UserID == userID {
			return apperror.NewValidation("user has recorded sales and cannot be deleted").
				WithDetail("user_id", userID.String())
		}
	}
	delete(r.store.users, userID)
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]*auth.User, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	items := make([]*auth.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		cp := *u
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}
