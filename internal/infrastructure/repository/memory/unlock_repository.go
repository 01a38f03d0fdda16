package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/proconnect-api/internal/domain/unlock"
)

type UnlockRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[unlockKey]unlock.Unlock
}

type unlockKey struct {
	userID     int64
	investorID int64
}

func NewUnlockRepository(seed []unlock.Unlock) *UnlockRepository {
	r := &UnlockRepository{items: make(map[unlockKey]unlock.Unlock, len(seed))}
	for _, item := range seed {
		r.items[unlockKey{item.UserID, item.InvestorID}] = item
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
	}
	return r
}

func (r *UnlockRepository) Exists(_ context.Context, userID, investorID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[unlockKey{userID, investorID}]
	return ok, nil
}

func (r *UnlockRepository) Create(_ context.Context, item unlock.Unlock) (unlock.Unlock, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := unlockKey{item.UserID, item.InvestorID}
	if existing, ok := r.items[key]; ok {
		return existing, false, nil
	}

	r.nextID++
	item.ID = r.nextID
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	r.items[key] = item
	return item, true, nil
}

func (r *UnlockRepository) ListByUser(_ context.Context, userID int64, limit int) ([]unlock.Unlock, error) {
	if limit <= 0 || limit > unlock.MaxListLimit {
		limit = unlock.MaxListLimit
	}

	r.mu.RLock()
	out := make([]unlock.Unlock, 0)
	for key, item := range r.items {
		if key.userID == userID {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
