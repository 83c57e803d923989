package memory

import (
	"context"
	"sync"

	"github.com/huddle-rtc/huddle/internal/core/domain"
)

// UserRepository is an in-memory port.UserRepository counterpart to
// RoomRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) FindBySubject(ctx context.Context, subject string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[subject]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Subject] = *user
	return nil
}
