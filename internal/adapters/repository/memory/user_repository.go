// Package memory provides in-memory repository implementations used by
// unit tests. They mirror the Postgres adapters' observable behavior,
// including the unique-email conflict and the atomic refresh-token consume,
// so service-level concurrency properties can be tested deterministically.
package memory

import (
	"context"
	"sync"

	"github.com/crew-app/crew/internal/core/domain"
	"github.com/crew-app/crew/internal/core/ports"
)

type UserRepository struct {
	mu     sync.Mutex
	nextID int
	users  map[int]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{nextID: 1, users: map[int]domain.User{}}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return &domain.ConflictError{Message: "email is already registered"}
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u := user
	return &u, nil
}

// Remove deletes a user record. It exists so tests can simulate a deleted
// account between token issuance and refresh.
func (r *UserRepository) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}
