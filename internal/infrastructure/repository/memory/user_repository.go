package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/proconnect-api/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[int64]user.Profile
}

func NewUserRepository(profiles []user.Profile) *UserRepository {
	items := make(map[int64]user.Profile, len(profiles))
	for _, item := range profiles {
		items[item.ID] = item
	}

	return &UserRepository{items: items}
}

func (r *UserRepository) GetByID(_ context.Context, userID int64) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	return item, ok, nil
}

func (r *UserRepository) GetByIDs(_ context.Context, userIDs []int64) ([]user.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.Profile, 0, len(userIDs))
	for _, id := range userIDs {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}
