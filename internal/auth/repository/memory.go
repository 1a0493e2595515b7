package repository

import (
	"context"
	"sync"

	autherrors "utsav/internal/auth/errors"
	"utsav/pkg/model"
)

// MemoryUserRepository is the in-process store used by tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].Email == user.Email {
			return autherrors.ErrEmailTaken
		}
		if r.users[i].Username == user.Username {
			return autherrors.ErrUsernameTaken
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.find(ctx, func(u *model.User) bool { return u.Email == email })
}

func (r *MemoryUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	return r.find(ctx, func(u *model.User) bool { return u.Email == email || u.Username == username })
}

func (r *MemoryUserRepository) find(ctx context.Context, match func(*model.User) bool) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if match(&r.users[i]) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, autherrors.ErrNotFound
}
