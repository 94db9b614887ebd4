package memory

import (
	"context"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
)

// UserRepository はメモリ上でユーザーを保持する user.Repository の実装です。
type UserRepository struct {
	storage *Storage
}

// NewUserRepository は UserRepository を生成します。
func NewUserRepository(storage *Storage) *UserRepository {
	return &UserRepository{storage: storage}
}

// Create はユーザーを登録します。同じ ID のユーザーは置き換えられます。
func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	r.storage.users[u.ID()] = u
	return u, nil
}

// FindByID は ID でユーザーを取得します。
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	u, ok := r.storage.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}
