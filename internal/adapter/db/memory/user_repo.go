// Package memory implements the repositories on mutex-guarded maps.
// It backs the memory storage driver and most of the test suite.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"recharge-service/internal/domain/user"
	errs "recharge-service/pkg/errors"
)

// UserRepoMem implements the user repository interfaces in memory.
type UserRepoMem struct {
	mu    sync.RWMutex
	users map[string]user.User
	order []string // insertion order of IDs
}

// NewUserRepoMem creates an empty in-memory user repository.
func NewUserRepoMem() *UserRepoMem {
	return &UserRepoMem{users: make(map[string]user.User)}
}

// Create stores a new user, enforcing email uniqueness under the lock.
func (r *UserRepoMem) Create(_ context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return errs.ErrDuplicateEmail
		}
	}

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users[u.ID] = *u
	r.order = append(r.order, u.ID)
	return nil
}

// GetByID returns the user with the given ID, nil when absent.
func (r *UserRepoMem) GetByID(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

// GetByEmail returns the user with the given email, nil when absent.
func (r *UserRepoMem) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// List returns all users in insertion order.
func (r *UserRepoMem) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]user.User, 0, len(r.users))
	for _, id := range r.order {
		if u, ok := r.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// Delete removes a user by ID. Deleting a missing user is not an error.
func (r *UserRepoMem) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}
