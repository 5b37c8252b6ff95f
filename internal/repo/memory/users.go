package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/logixshuvo/parcelhub/internal/domain/user"
)

// UsersRepo is the in-memory identity directory used by tests.
type UsersRepo struct {
	mu    sync.RWMutex
	order []string
	items map[string]user.User // keyed by id
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{items: make(map[string]user.User)}
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if u, ok := r.items[id]; ok && u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.order))

	for _, id := range r.order {
		if u, ok := r.items[id]; ok {
			out = append(out, u)
		}
	}

	return out, nil
}

func (r *UsersRepo) Register(_ context.Context, req user.RegisterRequest) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if u, ok := r.items[id]; ok && u.Email == req.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}

	role := req.Role

	if role == "" {
		role = user.RoleCustomer
	}

	u := user.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		Phone:     req.Phone,
		CreatedAt: time.Now().UTC(),
	}

	r.items[u.ID] = u
	r.order = append(r.order, u.ID)

	return u, nil
}

func (r *UsersRepo) SetRole(_ context.Context, id, role string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok || u.Role == role {
		return false, nil
	}

	u.Role = role
	r.items[id] = u

	return true, nil
}

func (r *UsersRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}

	delete(r.items, id)

	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return true, nil
}

func (r *UsersRepo) CountAll(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

func (r *UsersRepo) CountByRole(_ context.Context, role string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0

	for _, u := range r.items {
		if u.Role == role {
			n++
		}
	}

	return n, nil
}
